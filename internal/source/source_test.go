package source

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/btr-directory/research-cli/internal/model"
)

func TestClassify_OperatorDomain(t *testing.T) {
	got := Classify("https://www.grainger.co.uk/developments/the-forge", "grainger.co.uk")
	assert.Equal(t, model.SourceOperatorWebsite, got)
}

func TestClassify_OperatorBeatsPortal(t *testing.T) {
	// The operator's own domain wins even when the URL also matches a portal
	// pattern.
	got := Classify("https://rightmove.co.uk/grainger", "rightmove.co.uk")
	assert.Equal(t, model.SourceOperatorWebsite, got)
}

func TestClassify_Portal(t *testing.T) {
	got := Classify("https://www.rightmove.co.uk/properties/12345", "grainger.co.uk")
	assert.Equal(t, model.SourcePropertyPortal, got)
}

func TestClassify_News(t *testing.T) {
	assert.Equal(t, model.SourceNews, Classify("https://btrnews.co.uk/article", ""))
	assert.Equal(t, model.SourceNews, Classify("https://www.propertyweek.com/news/1", ""))
}

func TestClassify_Planning(t *testing.T) {
	assert.Equal(t, model.SourcePlanning, Classify("https://planning.manchester.gov.uk/app/1", ""))
	assert.Equal(t, model.SourcePlanning, Classify("https://planningpipe.com/record/1", ""))
}

func TestClassify_Other(t *testing.T) {
	assert.Equal(t, model.SourceOther, Classify("https://example.com/page", ""))
	assert.Equal(t, model.SourceOther, Classify("https://example.com/page", "grainger.co.uk"))
}

func TestMergePriority_Order(t *testing.T) {
	assert.Equal(t, 0, MergePriority(model.SourceOperatorWebsite))
	assert.Equal(t, 1, MergePriority(model.SourcePropertyPortal))
	assert.Equal(t, 2, MergePriority(model.SourceNews))
	assert.Equal(t, 3, MergePriority(model.SourcePlanning))
	assert.Equal(t, 4, MergePriority(model.SourceOther))
	assert.Equal(t, 4, MergePriority(model.SourceType("bogus")))
}

func TestDenied(t *testing.T) {
	assert.True(t, Denied("linkedin.com"))
	assert.True(t, Denied("www.youtube.com"))
	assert.True(t, Denied("companieshouse.gov.uk"))
	assert.False(t, Denied("btrnews.co.uk"))
	assert.False(t, Denied("grainger.co.uk"))
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "grainger.co.uk", Domain("https://www.grainger.co.uk/developments"))
	assert.Equal(t, "btrnews.co.uk", Domain("http://btrnews.co.uk"))
	assert.Equal(t, "example.com", Domain("https://EXAMPLE.com/Path"))
	assert.Equal(t, "", Domain("not a url"))
	assert.Equal(t, "", Domain(""))
}
