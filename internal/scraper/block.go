package scraper

import (
	"net/http"
	"strings"
)

// blockKind labels the anti-bot wall a static fetch hit.
type blockKind string

const (
	blockCloudflare blockKind = "cloudflare"
	blockCaptcha    blockKind = "captcha"
)

// challengeMarkers are body fragments of Cloudflare interstitial pages.
var challengeMarkers = []string{
	"checking your browser",
	"cf-browser-verification",
}

// classifyBlock reports whether the response is an anti-bot wall. Blocked
// pages carry no extractable content and are retried with the browser tier.
func classifyBlock(resp *http.Response, body []byte) (blockKind, bool) {
	if resp == nil {
		return "", false
	}

	if fromCloudflare(resp) {
		return blockCloudflare, true
	}

	lower := strings.ToLower(string(body))
	for _, marker := range challengeMarkers {
		if strings.Contains(lower, marker) {
			return blockCloudflare, true
		}
	}
	if strings.Contains(lower, "cloudflare") && strings.Contains(lower, "challenge") {
		return blockCloudflare, true
	}
	if strings.Contains(lower, "captcha") {
		return blockCaptcha, true
	}

	return "", false
}

// fromCloudflare matches the header signature of a Cloudflare denial. A
// 403/503 without these headers is an ordinary HTTP error.
func fromCloudflare(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusServiceUnavailable {
		return false
	}
	return resp.Header.Get("cf-ray") != "" ||
		resp.Header.Get("cf-cache-status") != "" ||
		resp.Header.Get("server") == "cloudflare"
}
