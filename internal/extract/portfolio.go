package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/btr-directory/research-cli/internal/model"
)

// cardSelectors cover the listing-card markup conventions seen across
// operator portfolio pages, most specific first.
var cardSelectors = []string{
	".property-card", ".development-card", ".location-card",
	`[class*="property-card"]`, `[class*="development-card"]`, `[class*="location-card"]`,
	`[class*="PropertyCard"]`, `[class*="DevelopmentCard"]`, `[class*="LocationCard"]`,
	`article[class*="card"]`, ".card",
	`[class*="listing-item"]`, `[class*="grid-item"]`,
}

// devPathFragments mark hrefs that look like individual development pages.
var devPathFragments = []string{
	"/development", "/location", "/neighbourhood",
	"/property", "/homes/", "/places/",
}

var navLinkRe = regexp.MustCompile(`(?i)^(home|about|contact|blog|news|login|sign)`)

// fromPortfolio extracts one observation per listing card. Card selectors
// are tried in order; the first selector matching at least two elements
// wins. When no card markup is present, repeated development-looking links
// are used as a weaker fallback.
func (e *Extractor) fromPortfolio(doc *goquery.Document, pageURL string, sourceType model.SourceType) []model.PartialDevelopment {
	var developments []model.PartialDevelopment

	for _, selector := range cardSelectors {
		cards := doc.Find(selector)
		if cards.Length() < 2 {
			continue
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			rawName := card.Find(`h2, h3, h4, .title, [class*="name"], [class*="title"]`).First().Text()
			name := cleanName(rawName)
			if name == "" || len(name) <= 2 || len(name) >= 100 {
				return
			}

			locationText := strings.TrimSpace(card.Find(`[class*="location"], [class*="address"], .subtitle, [class*="area"]`).Text())
			link, _ := card.Find("a").First().Attr("href")

			postcode := extractPostcode(locationText + " " + name)
			reg := ""
			if postcode != "" {
				reg = e.Regions.FromPostcode(postcode)
			} else if locationText != "" {
				reg = e.Regions.FromCity(locationText)
			}

			developments = append(developments, model.PartialDevelopment{
				Name:            name,
				Area:            locationText,
				Postcode:        postcode,
				Region:          reg,
				WebsiteURL:      resolveURL(link, pageURL),
				Operator:        e.Operator,
				DevelopmentType: e.DefaultType,
				SourceURL:       pageURL,
				SourceType:      sourceType,
			})
		})

		if len(developments) > 0 {
			break
		}
	}

	if len(developments) == 0 {
		developments = e.fromDevelopmentLinks(doc, pageURL, sourceType)
	}
	return developments
}

// fromDevelopmentLinks scans anchors whose hrefs look like development
// detail pages, skipping navigation text and duplicates.
func (e *Extractor) fromDevelopmentLinks(doc *goquery.Document, pageURL string, sourceType model.SourceType) []model.PartialDevelopment {
	var developments []model.PartialDevelopment
	seen := make(map[string]bool)

	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		text := strings.TrimSpace(a.Text())

		if text == "" || len(text) < 3 || len(text) > 80 {
			return
		}
		if navLinkRe.MatchString(text) {
			return
		}
		if seen[strings.ToLower(text)] {
			return
		}

		hrefLower := strings.ToLower(href)
		matched := false
		for _, frag := range devPathFragments {
			if strings.Contains(hrefLower, frag) {
				matched = true
				break
			}
		}
		if !matched {
			return
		}

		seen[strings.ToLower(text)] = true
		developments = append(developments, model.PartialDevelopment{
			Name:            cleanName(text),
			WebsiteURL:      resolveURL(href, pageURL),
			Operator:        e.Operator,
			DevelopmentType: e.DefaultType,
			SourceURL:       pageURL,
			SourceType:      sourceType,
		})
	})

	return developments
}

// resolveURL makes a card link absolute against the page URL. Unresolvable
// hrefs are returned as-is.
func resolveURL(href, baseURL string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
