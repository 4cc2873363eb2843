// Package extract pulls development facts out of scraped HTML using
// heuristic selectors and regex patterns. No LLMs: every field comes from a
// deterministic rule so runs are reproducible.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/btr-directory/research-cli/internal/model"
	"github.com/btr-directory/research-cli/internal/region"
	"github.com/btr-directory/research-cli/internal/source"
)

// Extractor turns scraped pages into partial development observations.
type Extractor struct {
	// Operator is the canonical operator name stamped on every observation.
	Operator string
	// OperatorDomain marks pages from the operator's own site.
	OperatorDomain string
	// DefaultType is used when keyword voting cannot decide a type.
	DefaultType model.DevelopmentType
	// Regions resolves postcodes and city names.
	Regions *region.Resolver
}

// New creates an Extractor with the built-in region tables.
func New(operator, operatorDomain string, defaultType model.DevelopmentType) *Extractor {
	return &Extractor{
		Operator:       operator,
		OperatorDomain: operatorDomain,
		DefaultType:    defaultType,
		Regions:        region.NewResolver(),
	}
}

// FromPage extracts zero or more developments from a scraped page. Portfolio
// extraction runs first; when it finds two or more cards the page is treated
// as a listing page, otherwise the whole page is read as a single
// development. Pages that yield neither return an empty slice, never an
// error: a useless page is a normal outcome.
func (e *Extractor) FromPage(page model.ScrapedPage) []model.PartialDevelopment {
	if !page.OK() || page.HTML == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		zap.L().Debug("extract: unparseable html", zap.String("url", page.URL), zap.Error(err))
		return nil
	}

	doc.Find("script, style, nav, footer, header, .cookie-banner, .cookie-consent, noscript").Remove()

	bodyText := cleanText(doc.Text())
	sourceType := source.Classify(page.URL, e.OperatorDomain)

	if portfolio := e.fromPortfolio(doc, page.URL, sourceType); len(portfolio) >= 2 {
		return portfolio
	}

	if single := e.fromSingle(doc, bodyText, page, sourceType); single != nil {
		return []model.PartialDevelopment{*single}
	}
	return nil
}

// FromPages runs FromPage over every usable page, concatenating results.
func (e *Extractor) FromPages(pages []model.ScrapedPage) []model.PartialDevelopment {
	var all []model.PartialDevelopment
	for _, p := range pages {
		found := e.FromPage(p)
		if len(found) > 0 {
			zap.L().Debug("extract: page yielded developments",
				zap.String("url", p.URL),
				zap.Int("count", len(found)),
			)
		}
		all = append(all, found...)
	}
	return all
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
