package search

import (
	"github.com/gcbaptista/go-instant-search/index"
	"github.com/gcbaptista/go-instant-search/services"
)

// candidateHit is a document that survived candidate generation
type candidateHit struct {
	id    index.DocID
	score int // Percentage of query trigrams found in the document
}

// toItems converts scored hits into result items with 0-based ranks.
// hits must already be sorted.
func toItems(hits []candidateHit, value func(index.DocID) string) []services.ResultItem {
	items := make([]services.ResultItem, len(hits))
	for i, hit := range hits {
		items[i] = services.ResultItem{
			ID:    hit.id,
			Value: value(hit.id),
			Score: hit.score,
			Rank:  i,
		}
	}
	return items
}
