package scraper

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
)

const (
	defaultBrowserTimeout = 45 * time.Second
	settleDelay           = 3 * time.Second
)

// browserFetcher renders pages in headless Chrome. Used for JS-heavy sites
// (operator portfolio pages are frequently client-rendered) and as the
// fallback when the static tier is blocked or returns a thin shell.
type browserFetcher struct {
	execPath string
	timeout  time.Duration
}

func newBrowserFetcher(timeout time.Duration) *browserFetcher {
	return &browserFetcher{execPath: findChromeBinary(), timeout: timeout}
}

// findChromeBinary locates a Chrome/Chromium binary on the host. Returns ""
// when none is found; chromedp then falls back to its own lookup.
func findChromeBinary() string {
	candidates := []string{
		"google-chrome",
		"google-chrome-stable",
		"chromium",
		"chromium-browser",
		"chrome",
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

var browserWhitespaceRe = regexp.MustCompile(`[ \t]+`)

// Fetch navigates to the URL in headless Chrome, waits for the document to
// settle, and returns the rendered title, visible text and outer HTML.
func (b *browserFetcher) Fetch(ctx context.Context, targetURL string) (title, bodyText, rawHTML string, err error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise.
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, b.timeout)
	defer cancelTimeout()

	err = chromedp.Run(runCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &rawHTML),
		chromedp.Evaluate(`document.body ? document.body.innerText : ""`, &bodyText),
	)
	if err != nil {
		return "", "", "", eris.Wrap(err, "browser: render")
	}

	bodyText = strings.TrimSpace(browserWhitespaceRe.ReplaceAllString(bodyText, " "))
	return title, bodyText, rawHTML, nil
}
