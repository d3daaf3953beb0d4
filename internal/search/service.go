package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-instant-search/config"
	"github.com/gcbaptista/go-instant-search/index"
	"github.com/gcbaptista/go-instant-search/internal/normalize"
	"github.com/gcbaptista/go-instant-search/internal/trigram"
	"github.com/gcbaptista/go-instant-search/services"
	"github.com/gcbaptista/go-instant-search/store"
)

// Service implements the search logic for a single index.
// It fulfills the services.Searcher interface.
//
// Search reads posting stores through Iterate, which compacts a CompactSet,
// so concurrent searches must be serialized by the caller just like adds.
type Service struct {
	trigramIndex  *index.TrigramIndex
	documentStore *store.DocumentStore
	settings      *config.IndexSettings
}

// NewService creates a new search Service.
func NewService(trigramIndex *index.TrigramIndex, docStore *store.DocumentStore, settings *config.IndexSettings) (*Service, error) {
	if trigramIndex == nil {
		return nil, fmt.Errorf("trigram index cannot be nil")
	}
	if docStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	return &Service{
		trigramIndex:  trigramIndex,
		documentStore: docStore,
		settings:      settings,
	}, nil
}

// Search returns the documents matching term, split into exact matches and
// "did you mean" alternatives, each ranked by trigram overlap.
// Queries too short to produce a trigram are answered by a full scan.
func (s *Service) Search(term string) (services.SearchResult, error) {
	startTime := time.Now()

	querySet, err := trigram.Extract(term)
	if err != nil {
		return services.SearchResult{}, fmt.Errorf("failed to extract query trigrams: %w", err)
	}

	var result services.SearchResult
	if querySet.Len() == 0 {
		result = Scan(term, s.documentStore)
	} else {
		result = s.searchTrigrams(term, querySet.Sorted())
	}

	result.Elapsed = time.Since(startTime)
	result.QueryId = uuid.New().String()
	return result, nil
}

func (s *Service) searchTrigrams(term string, query []trigram.Trigram) services.SearchResult {
	selection := SelectTrigrams(query, s.trigramIndex.Count)
	matchCounts := tally(s.trigramIndex, tallyLists(selection, s.settings.CandidateTally))

	words := lowerWords(term)
	exact := make([]candidateHit, 0)
	alternatives := make([]candidateHit, 0)

	for id, matchCount := range matchCounts {
		hit := candidateHit{id: id, score: overlapScore(s.trigramIndex, query, id)}
		value, _ := s.documentStore.Get(id)
		if matchCount >= selection.Len() && containsAll(value, words) {
			exact = append(exact, hit)
		} else {
			alternatives = append(alternatives, hit)
		}
	}

	rank(exact)
	rank(alternatives)

	maxAlternatives := s.settings.MaxAlternatives
	if maxAlternatives <= 0 {
		maxAlternatives = config.DefaultMaxAlternatives
	}
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	return services.SearchResult{
		ExactMatches:       toItems(exact, s.value),
		AlternativeMatches: toItems(alternatives, s.value),
	}
}

func (s *Service) value(id index.DocID) string {
	value, _ := s.documentStore.Get(id)
	return value
}

// rank sorts hits by score descending, then id ascending.
func rank(hits []candidateHit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].id < hits[j].id
	})
}

// lowerWords splits term on whitespace and lowercases each word.
// Words are not normalized: they are matched literally against stored text.
func lowerWords(term string) []string {
	words := normalize.Words(term)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

func containsAll(value string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(value, w) {
			return false
		}
	}
	return true
}
