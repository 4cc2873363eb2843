package search

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/btr-directory/research-cli/internal/model"
	"github.com/btr-directory/research-cli/internal/source"
	"github.com/btr-directory/research-cli/pkg/serpapi"
)

// Collect runs the queries against the search provider one at a time,
// deduplicating URLs, dropping denylisted domains and stopping once
// maxResults unique URLs are gathered. Individual query failures are logged
// and skipped; an error is returned only when every query failed and
// nothing was collected.
func Collect(ctx context.Context, client serpapi.Client, queries []string, maxResults int) ([]model.SearchResult, error) {
	var (
		results []model.SearchResult
		failed  int
	)
	seen := make(map[string]bool)

	for i, query := range queries {
		if len(results) >= maxResults {
			break
		}

		zap.L().Info("search: running query",
			zap.Int("index", i+1),
			zap.Int("total", len(queries)),
			zap.String("query", query),
		)

		organic, err := client.Search(ctx, query)
		if err != nil {
			zap.L().Warn("search: query failed",
				zap.String("query", query),
				zap.Error(err),
			)
			failed++
			continue
		}

		for _, r := range organic {
			if r.Link == "" || seen[r.Link] {
				continue
			}
			if source.Denied(source.Domain(r.Link)) {
				continue
			}
			seen[r.Link] = true
			results = append(results, model.SearchResult{
				Title:   r.Title,
				URL:     r.Link,
				Snippet: r.Snippet,
				Source:  model.ResultFromSearch,
				Query:   query,
			})
			if len(results) >= maxResults {
				break
			}
		}
	}

	if len(results) == 0 && failed == len(queries) {
		return nil, eris.New("search: all queries failed")
	}
	return results, nil
}
