// Package serpapi provides a client for the SerpAPI Google search engine.
package serpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the search operations used by the pipeline.
type Client interface {
	// Search runs one Google query with UK locale settings and returns the
	// organic results in engine order.
	Search(ctx context.Context, query string) ([]Result, error)
}

// Result is a single organic search result.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	OrganicResults []Result `json:"organic_results"`
	Error          string   `json:"error"`
}

// Option configures the SerpAPI client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(baseURL string) Option {
	return func(c *httpClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithResultCount sets the number of results requested per query.
func WithResultCount(n int) Option {
	return func(c *httpClient) {
		c.num = n
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	num     int
	http    *http.Client
}

// NewClient creates a SerpAPI client. Queries are issued against the UK
// Google domain with en-GB locale; no internal retries — query failures are
// handled (and tolerated) by the caller.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://serpapi.com",
		num:     20,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("location", "United Kingdom")
	params.Set("google_domain", "google.co.uk")
	params.Set("gl", "uk")
	params.Set("hl", "en")
	params.Set("num", strconv.Itoa(c.num))
	params.Set("api_key", c.apiKey)

	reqURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("serpapi: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "serpapi: unmarshal response")
	}
	if result.Error != "" {
		return nil, eris.Errorf("serpapi: %s", result.Error)
	}

	return result.OrganicResults, nil
}
