// Package source classifies URLs by provenance and defines the merge
// priority order used when reconciling observations from multiple sites.
package source

import (
	"net/url"
	"strings"

	"github.com/btr-directory/research-cli/internal/model"
)

// propertyPortals are consumer listing sites. Structured but second-hand.
var propertyPortals = []string{
	"rightmove.co.uk", "zoopla.co.uk", "onthemarket.com",
	"openrent.com", "spareroom.co.uk",
}

// newsSites are BTR/property trade press domains.
var newsSites = []string{
	"btrnews.co.uk", "urbanliving.news", "reactnews.com",
	"egi.co.uk", "estatesgazette.com", "propertyweek.com",
	"placenorth.co.uk", "insidehousing.co.uk", "costar.com",
	"buildtorent.org.uk",
}

// planningSites are planning registries and aggregators.
var planningSites = []string{
	"planningpipe.com", "planning.", "planningportal.",
}

// deniedDomains never yield development facts worth scraping: social
// networks and the company registry.
var deniedDomains = []string{
	"youtube.com", "linkedin.com", "twitter.com", "x.com",
	"facebook.com", "instagram.com", "tiktok.com",
	"pinterest.com", "reddit.com",
	"companieshouse.gov.uk",
}

// Classify labels a URL by provenance. The operator's own domain wins over
// any other classification.
func Classify(rawURL, operatorDomain string) model.SourceType {
	lower := strings.ToLower(rawURL)

	if operatorDomain != "" && strings.Contains(lower, strings.ToLower(operatorDomain)) {
		return model.SourceOperatorWebsite
	}
	for _, p := range propertyPortals {
		if strings.Contains(lower, p) {
			return model.SourcePropertyPortal
		}
	}
	for _, n := range newsSites {
		if strings.Contains(lower, n) {
			return model.SourceNews
		}
	}
	for _, p := range planningSites {
		if strings.Contains(lower, p) {
			return model.SourcePlanning
		}
	}
	return model.SourceOther
}

// MergePriority orders source types for field conflict resolution. Lower
// wins: the operator's own site is the most authoritative about its stock.
func MergePriority(t model.SourceType) int {
	switch t {
	case model.SourceOperatorWebsite:
		return 0
	case model.SourcePropertyPortal:
		return 1
	case model.SourceNews:
		return 2
	case model.SourcePlanning:
		return 3
	default:
		return 4
	}
}

// Denied reports whether a domain is on the scrape denylist.
func Denied(domain string) bool {
	for _, d := range deniedDomains {
		if strings.Contains(domain, d) {
			return true
		}
	}
	return false
}

// Domain extracts the hostname from a URL, stripping any "www." prefix.
// Malformed URLs yield "".
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
