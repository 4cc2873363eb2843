package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btr-directory/research-cli/internal/model"
)

const forgeHTML = `<html><head>
<title>The Forge | Grainger</title>
<meta name="description" content="The Forge is a 250 home build to rent development in central Manchester with premium resident amenities.">
</head><body>
<h1>The Forge</h1>
<div class="address">5 Forge Lane, Manchester, M1 1AE</div>
<p>The Forge comprises 250 apartments and is now leasing. Residents enjoy a
gym, rooftop terrace and 24 hour concierge in the heart of the city.</p>
</body></html>`

const forgeNewsHTML = `<html><head><title>Grainger opens The Forge</title></head><body>
<h1>The Forge</h1>
<p>Grainger has opened The Forge in Manchester M1 1AE, a scheme of 248 apartments
which welcomed its first residents this month after construction completed.</p>
</body></html>`

func TestRun_EndToEnd(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/the-forge":
			_, _ = w.Write([]byte(forgeHTML))
		case "/news/forge":
			_, _ = w.Write([]byte(forgeNewsHTML))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer site.Close()

	outDir := t.TempDir()
	res, err := Run(context.Background(), Options{
		Operator:    "Grainger",
		DefaultType: model.TypeMultifamily,
		OutputDir:   outDir,
		UseBrowser:  false,
	}, []model.SearchResult{
		{URL: site.URL + "/the-forge"},
		{URL: site.URL + "/news/forge"},
		{URL: site.URL + "/missing"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.PagesScraped)
	assert.Equal(t, 1, res.PagesFailed)

	// Both pages describe the same development.
	require.Len(t, res.Developments, 1)
	dev := res.Developments[0]
	assert.Equal(t, "The Forge", dev.Name)
	assert.Equal(t, "M1 1AE", dev.Postcode)
	assert.Equal(t, "North West", dev.Region)
	assert.Equal(t, 2, dev.Confidence.SourceCount)

	csvBytes, err := os.ReadFile(filepath.Join(outDir, "grainger_review.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csvBytes), "The Forge")

	sqlBytes, err := os.ReadFile(filepath.Join(outDir, "grainger_upload.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(sqlBytes), "BTR Directory Data Upload: Grainger")

	assert.Equal(t, filepath.Join(outDir, "grainger_review.csv"), res.CSVPath)
	assert.Equal(t, filepath.Join(outDir, "grainger_upload.sql"), res.SQLPath)
}

func TestRun_NoUsablePages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	outDir := t.TempDir()
	res, err := Run(context.Background(), Options{
		Operator:    "Grainger",
		DefaultType: model.TypeMultifamily,
		OutputDir:   outDir,
	}, []model.SearchResult{{URL: srv.URL}})

	// A run with zero extractable pages still completes and writes empty
	// outputs.
	require.NoError(t, err)
	assert.Empty(t, res.Developments)
	assert.Equal(t, 1, res.PagesFailed)

	csvBytes, err := os.ReadFile(res.CSVPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csvBytes), "confidence,name,slug"))
}

func TestRun_ProgressCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forgeHTML))
	}))
	defer srv.Close()

	var calls int
	_, err := Run(context.Background(), Options{
		Operator:    "Grainger",
		DefaultType: model.TypeMultifamily,
		OutputDir:   t.TempDir(),
		Progress: func(current, total int, url string) {
			calls++
		},
	}, []model.SearchResult{{URL: srv.URL}, {URL: srv.URL + "/b"}})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
