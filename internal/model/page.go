package model

// ResultSource identifies how a search result was obtained.
type ResultSource string

const (
	ResultFromSearch ResultSource = "search"
	ResultFromManual ResultSource = "manual"
)

// SearchResult is a candidate URL produced by the query stage or supplied
// directly by the user. Immutable once created.
type SearchResult struct {
	Title   string       `json:"title"`
	URL     string       `json:"url"`
	Snippet string       `json:"snippet"`
	Source  ResultSource `json:"source"`
	Query   string       `json:"query,omitempty"` // originating query, if any
}

// FetchMethod records which scrape tier produced a page.
type FetchMethod string

const (
	FetchStatic  FetchMethod = "static"
	FetchDynamic FetchMethod = "dynamic"
)

// ScrapedPage is the outcome of fetching one URL. Error is set on
// network/timeout/block failure; a page with a non-empty Error carries no
// usable content and is excluded from extraction.
type ScrapedPage struct {
	URL      string      `json:"url"`
	Title    string      `json:"title"`
	BodyText string      `json:"body_text"`
	HTML     string      `json:"html,omitempty"`
	Method   FetchMethod `json:"method"`
	Error    string      `json:"error,omitempty"`
}

// OK reports whether the page carries enough content to be worth extracting.
func (p ScrapedPage) OK() bool {
	return p.Error == "" && len(p.BodyText) > 50
}
