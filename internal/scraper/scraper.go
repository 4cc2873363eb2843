// Package scraper fetches candidate pages with a two-tier strategy: a cheap
// static HTTP fetch first, then a headless-browser render for pages that are
// blocked, empty, or known to be client-side rendered.
package scraper

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/btr-directory/research-cli/internal/model"
	"github.com/btr-directory/research-cli/internal/source"
)

// dynamicFetcher is the browser tier. Abstracted so tests can stub the
// headless render.
type dynamicFetcher interface {
	Fetch(ctx context.Context, targetURL string) (title, bodyText, rawHTML string, err error)
}

// Options configures a scrape run.
type Options struct {
	// UseBrowser enables the headless-browser fallback tier.
	UseBrowser bool
	// OperatorDomain marks the operator's own pages, which always get the
	// browser render when enabled (operator sites are the most likely to be
	// client-rendered and the most valuable to get right).
	OperatorDomain string
	// Progress, when set, is called before each fetch with 1-based position.
	Progress func(current, total int, url string)
	// StaticTimeout bounds one static fetch; BrowserTimeout bounds one
	// browser render. Zero values take the package defaults.
	StaticTimeout  time.Duration
	BrowserTimeout time.Duration
}

// Scraper fetches pages sequentially with a politeness delay between
// requests to distinct hosts.
type Scraper struct {
	client  *http.Client
	browser dynamicFetcher
	limiter *rate.Limiter
	opts    Options
}

// New creates a Scraper with the given inter-request delay.
func New(delay time.Duration, opts Options) *Scraper {
	if opts.StaticTimeout <= 0 {
		opts.StaticTimeout = defaultStaticTimeout
	}
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = defaultBrowserTimeout
	}
	s := &Scraper{
		client:  newStaticClient(opts.StaticTimeout),
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		opts:    opts,
	}
	if opts.UseBrowser {
		s.browser = newBrowserFetcher(opts.BrowserTimeout)
	}
	return s
}

// jsHostPatterns are hosting platforms that serve client-rendered shells to
// plain HTTP clients.
var jsHostPatterns = []string{"vercel.app", "netlify.app", "wixsite.com"}

// looksLikeAppShell reports whether the raw markup is a tiny client-side
// rendering shell that a plain GET cannot usefully read.
func looksLikeAppShell(rawHTML string) bool {
	if len(rawHTML) >= 2000 {
		return false
	}
	lower := strings.ToLower(rawHTML)
	if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
		return true
	}
	return strings.Contains(lower, `meta http-equiv="refresh"`)
}

// needsBrowser decides whether a static result should be retried with the
// browser tier. Operator pages always qualify: extraction quality there
// drives the whole run.
func (s *Scraper) needsBrowser(targetURL, bodyText, rawHTML string, staticErr error) bool {
	if s.browser == nil {
		return false
	}
	if staticErr != nil {
		return true
	}
	if len(bodyText) < 200 || looksLikeAppShell(rawHTML) {
		return true
	}
	domain := source.Domain(targetURL)
	if s.opts.OperatorDomain != "" && strings.Contains(domain, s.opts.OperatorDomain) {
		return true
	}
	for _, p := range jsHostPatterns {
		if strings.Contains(domain, p) {
			return true
		}
	}
	return false
}

// Scrape fetches a single URL, escalating from the static tier to the
// browser tier when needed. Failures are recorded on the page rather than
// returned: one bad URL never aborts a run.
func (s *Scraper) Scrape(ctx context.Context, targetURL string) model.ScrapedPage {
	page := model.ScrapedPage{URL: targetURL, Method: model.FetchStatic}

	title, bodyText, rawHTML, err := s.fetchStatic(ctx, targetURL)
	if err != nil {
		zap.L().Debug("scrape: static tier failed",
			zap.String("url", targetURL),
			zap.Error(err),
		)
	}

	if s.needsBrowser(targetURL, bodyText, rawHTML, err) {
		zap.L().Debug("scrape: escalating to browser", zap.String("url", targetURL))
		bTitle, bBody, bHTML, bErr := s.browser.Fetch(ctx, targetURL)
		switch {
		case bErr != nil:
			zap.L().Warn("scrape: browser tier failed",
				zap.String("url", targetURL),
				zap.Error(bErr),
			)
			// Fall through to whatever the static tier produced.
		case err == nil && len(bBody) <= len(bodyText):
			// The render added nothing; keep the static result.
		default:
			page.Method = model.FetchDynamic
			page.Title = bTitle
			page.BodyText = bBody
			page.HTML = bHTML
			return page
		}
	}

	if err != nil {
		page.Error = err.Error()
		return page
	}
	page.Title = title
	page.BodyText = bodyText
	page.HTML = rawHTML
	return page
}

// ScrapeAll fetches every result sequentially, honouring the politeness
// delay between requests. Pages are returned in input order; failed fetches
// appear with Error set.
func (s *Scraper) ScrapeAll(ctx context.Context, results []model.SearchResult) []model.ScrapedPage {
	pages := make([]model.ScrapedPage, 0, len(results))
	for i, r := range results {
		if err := s.limiter.Wait(ctx); err != nil {
			pages = append(pages, model.ScrapedPage{URL: r.URL, Error: err.Error()})
			continue
		}
		if s.opts.Progress != nil {
			s.opts.Progress(i+1, len(results), r.URL)
		}
		pages = append(pages, s.Scrape(ctx, r.URL))
	}
	return pages
}
