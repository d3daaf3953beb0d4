package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-instant-search/services"
)

// DefaultMultiSearchConcurrency bounds the number of queries of one
// multi-search request in flight at a time.
const DefaultMultiSearchConcurrency = 4

// MultiSearch executes named queries against searcher in parallel and
// collects their results by name. It stops at the first failing query or
// when ctx is cancelled.
func MultiSearch(ctx context.Context, searcher services.Searcher, queries []services.NamedSearchQuery) (*services.MultiSearchResult, error) {
	startTime := time.Now()

	if len(queries) == 0 {
		return nil, fmt.Errorf("at least one query is required")
	}
	seen := make(map[string]struct{}, len(queries))
	for _, q := range queries {
		if q.Name == "" {
			return nil, fmt.Errorf("each query must have a non-empty name")
		}
		if _, dup := seen[q.Name]; dup {
			return nil, fmt.Errorf("duplicate query name '%s'", q.Name)
		}
		seen[q.Name] = struct{}{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultMultiSearchConcurrency)

	var mu sync.Mutex
	results := make(map[string]services.SearchResult, len(queries))

	for _, nq := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("multi-search cancelled: %w", err)
			}
			result, err := searcher.Search(nq.Query)
			if err != nil {
				return fmt.Errorf("error executing query '%s': %w", nq.Name, err)
			}
			mu.Lock()
			results[nq.Name] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &services.MultiSearchResult{
		Results:          results,
		TotalQueries:     len(queries),
		ProcessingTimeMs: float64(time.Since(startTime).Nanoseconds()) / 1e6,
	}, nil
}
