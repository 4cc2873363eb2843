package scraper

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

const (
	defaultStaticTimeout = 15 * time.Second
	maxBodyBytes         = 2 * 1024 * 1024
	userAgent            = "Mozilla/5.0 (compatible; BTRResearchBot/1.0)"
)

func newStaticClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// fetchStatic performs a plain HTTP GET and converts the response to title
// plus body text. Block detection runs before status checks so a Cloudflare
// 403 is reported as a block, not a plain HTTP error.
func (s *Scraper) fetchStatic(ctx context.Context, targetURL string) (title, bodyText, rawHTML string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", "", "", eris.Wrap(err, "static: create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", "", eris.Wrap(err, "static: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", "", eris.Wrap(err, "static: read body")
	}

	if kind, blocked := classifyBlock(resp, body); blocked {
		return "", "", "", eris.Errorf("static: blocked (%s)", kind)
	}

	if resp.StatusCode >= 400 {
		return "", "", "", eris.Errorf("static: status %d", resp.StatusCode)
	}

	rawHTML = string(body)
	title, bodyText, err = htmlToText(body)
	if err != nil {
		return "", "", "", err
	}
	return title, bodyText, rawHTML, nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// htmlToText parses HTML, drops non-content elements, and returns the page
// title plus whitespace-collapsed body text.
func htmlToText(body []byte) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", eris.Wrap(err, "static: parse html")
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, noscript").Remove()

	text = whitespaceRe.ReplaceAllString(doc.Find("body").Text(), " ")
	return title, strings.TrimSpace(text), nil
}
