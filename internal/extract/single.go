package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/btr-directory/research-cli/internal/model"
)

// fromSingle reads the whole page as one development. The name comes from
// the first h1, then og:title, then the title tag; a page without a
// plausible name yields nothing.
func (e *Extractor) fromSingle(doc *goquery.Document, bodyText string, page model.ScrapedPage, sourceType model.SourceType) *model.PartialDevelopment {
	h1 := strings.TrimSpace(doc.Find("h1").First().Text())
	ogTitle, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	titleTag := strings.TrimSpace(doc.Find("title").First().Text())

	name := h1
	if name == "" {
		name = strings.TrimSpace(ogTitle)
	}
	if name == "" {
		name = titleTag
	}
	name = cleanName(name)
	if len(name) < 3 {
		return nil
	}

	postcode := extractPostcode(bodyText)
	area := extractArea(doc)
	reg := ""
	switch {
	case postcode != "":
		reg = e.Regions.FromPostcode(postcode)
	case area != "":
		reg = e.Regions.FromCity(area)
	}

	return &model.PartialDevelopment{
		Name:            name,
		Area:            area,
		Region:          reg,
		Postcode:        postcode,
		NumberOfUnits:   extractUnitCount(bodyText),
		Status:          inferStatus(bodyText),
		CompletionDate:  extractCompletionDate(bodyText),
		Description:     extractDescription(doc),
		WebsiteURL:      page.URL,
		Operator:        e.Operator,
		AssetOwner:      extractAssetOwner(bodyText, e.Operator),
		DevelopmentType: inferDevelopmentType(bodyText, e.DefaultType),
		Amenities:       extractAmenities(bodyText),
		PetsAllowed:     extractPetsAllowed(bodyText),
		SourceURL:       page.URL,
		SourceType:      sourceType,
	}
}

// extractArea finds the locality: og:locality meta first, then the first
// address-like element, taking the second-to-last comma part (city sits
// before the postcode in UK addresses).
func extractArea(doc *goquery.Document) string {
	if ogLocality, ok := doc.Find(`meta[property="og:locality"]`).Attr("content"); ok {
		if v := strings.TrimSpace(ogLocality); v != "" {
			return v
		}
	}

	addressEl := strings.TrimSpace(doc.Find(`address, [class*="address"], [class*="location"], [itemprop="address"]`).First().Text())
	if addressEl == "" || len(addressEl) >= 100 {
		return ""
	}

	parts := strings.Split(addressEl, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) >= 2 {
		if city := parts[len(parts)-2]; city != "" {
			return city
		}
		return parts[0]
	}
	return addressEl
}

const (
	descriptionMaxLen  = 300
	maxParagraphsTried = 10
)

// extractDescription prefers meta descriptions, falling back to the first
// substantial paragraph. Truncated to 300 characters.
func extractDescription(doc *goquery.Document) string {
	if metaDesc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if v := strings.TrimSpace(metaDesc); len(v) > 20 {
			return truncate(v, descriptionMaxLen)
		}
	}
	if ogDesc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		if v := strings.TrimSpace(ogDesc); len(v) > 20 {
			return truncate(v, descriptionMaxLen)
		}
	}

	var desc string
	doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		if i >= maxParagraphsTried {
			return false
		}
		text := strings.TrimSpace(p.Text())
		if len(text) > 50 && len(text) < 500 {
			desc = truncate(text, descriptionMaxLen)
			return false
		}
		return true
	})
	return desc
}

// truncate caps s at n characters, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
