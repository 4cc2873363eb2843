package scraper

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBlock_Cloudflare403(t *testing.T) {
	resp := &http.Response{
		StatusCode: 403,
		Header:     http.Header{"Cf-Ray": {"abc123"}},
	}
	kind, blocked := classifyBlock(resp, nil)
	assert.True(t, blocked)
	assert.Equal(t, blockCloudflare, kind)
}

func TestClassifyBlock_Cloudflare503Server(t *testing.T) {
	resp := &http.Response{
		StatusCode: 503,
		Header:     http.Header{"Server": {"cloudflare"}},
	}
	kind, blocked := classifyBlock(resp, nil)
	assert.True(t, blocked)
	assert.Equal(t, blockCloudflare, kind)
}

func TestClassifyBlock_ChallengePageMarker(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Header: http.Header{}}
	body := []byte("<html><body>Checking your browser before accessing the site</body></html>")
	kind, blocked := classifyBlock(resp, body)
	assert.True(t, blocked)
	assert.Equal(t, blockCloudflare, kind)
}

func TestClassifyBlock_CaptchaInBody(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Header: http.Header{}}
	body := []byte("<html><body>Please complete the reCAPTCHA to continue</body></html>")
	kind, blocked := classifyBlock(resp, body)
	assert.True(t, blocked)
	assert.Equal(t, blockCaptcha, kind)
}

func TestClassifyBlock_NilResponse(t *testing.T) {
	_, blocked := classifyBlock(nil, nil)
	assert.False(t, blocked)
}

func TestClassifyBlock_CleanPage(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Header: http.Header{}}
	body := []byte("<html><body><h1>The Forge</h1><p>250 apartments in Manchester</p></body></html>")
	_, blocked := classifyBlock(resp, body)
	assert.False(t, blocked)
}

func TestClassifyBlock_Plain403NotBlocked(t *testing.T) {
	// A 403 without Cloudflare headers is an ordinary HTTP error, not a block.
	resp := &http.Response{StatusCode: 403, Header: http.Header{}}
	body := []byte("<html><body><h1>Forbidden</h1><p>You do not have access to this page on this server at this time.</p></body></html>")
	_, blocked := classifyBlock(resp, body)
	assert.False(t, blocked)
}

func TestLooksLikeAppShell(t *testing.T) {
	assert.True(t, looksLikeAppShell(`<html><noscript>Enable JavaScript to continue</noscript></html>`))
	assert.True(t, looksLikeAppShell(`<html><head><meta http-equiv="refresh" content="0;url=/app"></head></html>`))
	assert.False(t, looksLikeAppShell(`<html><body><h1>The Forge</h1></body></html>`))
	// Large pages are never treated as shells regardless of markers.
	big := `<html><noscript>javascript</noscript>` + string(make([]byte, 2000)) + `</html>`
	assert.False(t, looksLikeAppShell(big))
}
