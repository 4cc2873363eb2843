// Package pipeline orchestrates a research run: prioritize URLs, scrape,
// extract, deduplicate, and write the output artifacts.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/btr-directory/research-cli/internal/dedupe"
	"github.com/btr-directory/research-cli/internal/extract"
	"github.com/btr-directory/research-cli/internal/model"
	"github.com/btr-directory/research-cli/internal/output"
	"github.com/btr-directory/research-cli/internal/scraper"
	"github.com/btr-directory/research-cli/internal/search"
	"github.com/btr-directory/research-cli/internal/slug"
	"github.com/btr-directory/research-cli/internal/source"
)

// Options configures one research run.
type Options struct {
	Operator    string
	Website     string
	DefaultType model.DevelopmentType
	OutputDir   string
	UseBrowser  bool
	ScrapeDelay time.Duration
	// Per-fetch timeouts; zero values take the scraper defaults.
	StaticTimeout  time.Duration
	BrowserTimeout time.Duration
	// Progress, when set, receives scrape progress callbacks.
	Progress func(current, total int, url string)
}

// Result summarises a completed run.
type Result struct {
	Developments []model.ExtractedDevelopment
	PagesScraped int
	PagesFailed  int
	CSVPath      string
	SQLPath      string
}

// Run executes the research pipeline over the gathered URLs. Per-page
// scrape and extraction failures are tolerated; the run errors only when
// output files cannot be written.
func Run(ctx context.Context, opts Options, results []model.SearchResult) (*Result, error) {
	operatorDomain := source.Domain(opts.Website)

	prioritized := search.Prioritize(results, operatorDomain)

	sc := scraper.New(opts.ScrapeDelay, scraper.Options{
		UseBrowser:     opts.UseBrowser,
		OperatorDomain: operatorDomain,
		Progress:       opts.Progress,
		StaticTimeout:  opts.StaticTimeout,
		BrowserTimeout: opts.BrowserTimeout,
	})
	pages := sc.ScrapeAll(ctx, prioritized)

	var usable []model.ScrapedPage
	failed := 0
	for _, p := range pages {
		if p.OK() {
			usable = append(usable, p)
		} else {
			failed++
			zap.L().Warn("pipeline: page unusable",
				zap.String("url", p.URL),
				zap.String("error", p.Error),
			)
		}
	}
	zap.L().Info("pipeline: scrape complete",
		zap.Int("usable", len(usable)),
		zap.Int("failed", failed),
	)

	ex := extract.New(opts.Operator, operatorDomain, opts.DefaultType)
	partials := ex.FromPages(usable)
	zap.L().Info("pipeline: extraction complete", zap.Int("observations", len(partials)))

	developments := dedupe.MergeAll(partials, opts.Operator, opts.DefaultType, operatorDomain)
	zap.L().Info("pipeline: dedup complete", zap.Int("developments", len(developments)))

	res := &Result{
		Developments: developments,
		PagesScraped: len(usable),
		PagesFailed:  failed,
	}

	if err := writeOutputs(res, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// writeOutputs renders the review CSV and upload SQL into the output
// directory, named by operator slug.
func writeOutputs(res *Result, opts Options) error {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return eris.Wrap(err, "pipeline: create output dir")
	}

	operatorSlug := slug.Make(opts.Operator)

	res.CSVPath = filepath.Join(opts.OutputDir, operatorSlug+"_review.csv")
	csvFile, err := os.Create(res.CSVPath)
	if err != nil {
		return eris.Wrap(err, "pipeline: create csv")
	}
	defer func() { _ = csvFile.Close() }()
	if err := output.WriteCSV(csvFile, res.Developments); err != nil {
		return err
	}

	res.SQLPath = filepath.Join(opts.OutputDir, operatorSlug+"_upload.sql")
	sqlContent := output.GenerateSQL(res.Developments, opts.Operator, opts.Website, time.Now())
	if err := os.WriteFile(res.SQLPath, []byte(sqlContent), 0o644); err != nil {
		return eris.Wrap(err, "pipeline: write sql")
	}

	return nil
}
