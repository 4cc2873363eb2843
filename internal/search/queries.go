// Package search builds operator research queries and ranks candidate URLs
// by source quality before scraping.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/btr-directory/research-cli/internal/model"
	"github.com/btr-directory/research-cli/internal/source"
)

// BuildQueries turns an operator name (and optional website) into the
// ordered list of search queries to run: exact-name BTR queries first, then
// site-scoped queries when a domain is known, then one fixed trade-press
// query.
func BuildQueries(operatorName, website string) []string {
	queries := []string{
		fmt.Sprintf("%q BTR developments UK", operatorName),
		fmt.Sprintf("%q build to rent UK properties", operatorName),
		fmt.Sprintf("%q build to rent developments", operatorName),
		fmt.Sprintf("%q build to rent planning application UK", operatorName),
	}

	if website != "" {
		if domain := source.Domain(website); domain != "" {
			queries = append(queries,
				"site:"+domain+" developments",
				"site:"+domain+" locations OR neighbourhoods OR homes",
			)
		}
	}

	queries = append(queries, fmt.Sprintf("%q site:btrnews.co.uk", operatorName))
	return queries
}

// ParseManualURLs splits a comma-separated URL list into search results,
// dropping anything that is not an http(s) URL.
func ParseManualURLs(raw string) []model.SearchResult {
	var results []model.SearchResult
	for _, part := range strings.Split(raw, ",") {
		u := strings.TrimSpace(part)
		if !strings.HasPrefix(u, "http") {
			continue
		}
		results = append(results, model.SearchResult{
			URL:    u,
			Source: model.ResultFromManual,
		})
	}
	return results
}

// FromURLs wraps a plain URL list (e.g. interactively collected) as manual
// search results.
func FromURLs(urls []string) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(urls))
	for _, u := range urls {
		results = append(results, model.SearchResult{
			URL:    u,
			Source: model.ResultFromManual,
		})
	}
	return results
}

// urlRank assigns a source-quality rank to a URL: 0 for the operator's own
// domain, 1 for high-trust trade press, up to 5 for unclassified domains.
// The rank decides scrape order, and through merge priority, which source
// wins field conflicts.
func urlRank(rawURL, operatorDomain string) int {
	domain := source.Domain(rawURL)
	switch {
	case operatorDomain != "" && strings.Contains(domain, operatorDomain):
		return 0
	case strings.Contains(domain, "btrnews"),
		strings.Contains(domain, "urbanliving"):
		return 1
	case strings.Contains(domain, "reactnews"),
		strings.Contains(domain, "egi.co"),
		strings.Contains(domain, "estatesgazette"),
		strings.Contains(domain, "propertyweek"):
		return 2
	case strings.Contains(domain, "rightmove"),
		strings.Contains(domain, "zoopla"):
		return 3
	case strings.Contains(domain, "planning"):
		return 4
	default:
		return 5
	}
}

// Prioritize stable-sorts results by ascending source-quality rank. Results
// with equal rank keep their engine order.
func Prioritize(results []model.SearchResult, operatorDomain string) []model.SearchResult {
	sorted := make([]model.SearchResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return urlRank(sorted[i].URL, operatorDomain) < urlRank(sorted[j].URL, operatorDomain)
	})
	return sorted
}
