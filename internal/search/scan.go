package search

import (
	"github.com/gcbaptista/go-instant-search/index"
	"github.com/gcbaptista/go-instant-search/services"
	"github.com/gcbaptista/go-instant-search/store"
)

// Scan answers term by checking every stored document for each lowercased
// query word as a literal substring. Matches are all scored 100 and returned
// in store iteration order; there are never alternatives.
func Scan(term string, docs *store.DocumentStore) services.SearchResult {
	words := lowerWords(term)
	exact := make([]services.ResultItem, 0)

	docs.Range(func(id index.DocID, value string) bool {
		if containsAll(value, words) {
			exact = append(exact, services.ResultItem{
				ID:    id,
				Value: value,
				Score: 100,
				Rank:  len(exact),
			})
		}
		return true
	})

	return services.SearchResult{
		ExactMatches:       exact,
		AlternativeMatches: []services.ResultItem{},
		Fallback:           true,
	}
}
