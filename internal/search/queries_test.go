package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/btr-directory/research-cli/internal/model"
)

func TestBuildQueries_NoWebsite(t *testing.T) {
	queries := BuildQueries("Grainger", "")

	assert.Len(t, queries, 5)
	assert.Equal(t, `"Grainger" BTR developments UK`, queries[0])
	assert.Equal(t, `"Grainger" site:btrnews.co.uk`, queries[4])
	for _, q := range queries {
		assert.NotContains(t, q, "site:grainger")
	}
}

func TestBuildQueries_WithWebsite(t *testing.T) {
	queries := BuildQueries("Grainger", "https://www.grainger.co.uk")

	assert.Len(t, queries, 7)
	assert.Contains(t, queries, "site:grainger.co.uk developments")
	assert.Contains(t, queries, "site:grainger.co.uk locations OR neighbourhoods OR homes")
	// The trade press query stays last.
	assert.Equal(t, `"Grainger" site:btrnews.co.uk`, queries[len(queries)-1])
}

func TestBuildQueries_QuotesOperatorName(t *testing.T) {
	queries := BuildQueries("Urban Bubble Living", "")
	assert.Contains(t, queries[0], `"Urban Bubble Living"`)
}

func TestParseManualURLs(t *testing.T) {
	results := ParseManualURLs("https://a.com/x, http://b.com ,not-a-url,  https://c.com/y")

	assert.Len(t, results, 3)
	assert.Equal(t, "https://a.com/x", results[0].URL)
	assert.Equal(t, "http://b.com", results[1].URL)
	assert.Equal(t, "https://c.com/y", results[2].URL)
	for _, r := range results {
		assert.Equal(t, model.ResultFromManual, r.Source)
	}
}

func TestParseManualURLs_Empty(t *testing.T) {
	assert.Empty(t, ParseManualURLs(""))
	assert.Empty(t, ParseManualURLs("foo,bar"))
}

func TestFromURLs(t *testing.T) {
	results := FromURLs([]string{"https://a.com", "https://b.com"})
	assert.Len(t, results, 2)
	assert.Equal(t, model.ResultFromManual, results[0].Source)
}

func TestPrioritize_OperatorFirst(t *testing.T) {
	results := []model.SearchResult{
		{URL: "https://example.com/article"},
		{URL: "https://btrnews.co.uk/story"},
		{URL: "https://www.grainger.co.uk/developments"},
		{URL: "https://rightmove.co.uk/listing"},
	}

	sorted := Prioritize(results, "grainger.co.uk")

	assert.Equal(t, "https://www.grainger.co.uk/developments", sorted[0].URL)
	assert.Equal(t, "https://btrnews.co.uk/story", sorted[1].URL)
	assert.Equal(t, "https://rightmove.co.uk/listing", sorted[2].URL)
	assert.Equal(t, "https://example.com/article", sorted[3].URL)
}

func TestPrioritize_StableWithinRank(t *testing.T) {
	results := []model.SearchResult{
		{URL: "https://example.com/one"},
		{URL: "https://example.com/two"},
		{URL: "https://example.com/three"},
	}

	sorted := Prioritize(results, "")

	assert.Equal(t, "https://example.com/one", sorted[0].URL)
	assert.Equal(t, "https://example.com/two", sorted[1].URL)
	assert.Equal(t, "https://example.com/three", sorted[2].URL)
}

func TestPrioritize_DoesNotMutateInput(t *testing.T) {
	results := []model.SearchResult{
		{URL: "https://example.com/article"},
		{URL: "https://www.grainger.co.uk/developments"},
	}

	_ = Prioritize(results, "grainger.co.uk")

	assert.Equal(t, "https://example.com/article", results[0].URL)
}

func TestURLRank(t *testing.T) {
	assert.Equal(t, 0, urlRank("https://grainger.co.uk/x", "grainger.co.uk"))
	assert.Equal(t, 1, urlRank("https://btrnews.co.uk/x", "grainger.co.uk"))
	assert.Equal(t, 2, urlRank("https://propertyweek.com/x", ""))
	assert.Equal(t, 3, urlRank("https://zoopla.co.uk/x", ""))
	assert.Equal(t, 4, urlRank("https://planning.leeds.gov.uk/x", ""))
	assert.Equal(t, 5, urlRank("https://example.com/x", ""))
}
