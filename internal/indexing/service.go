package indexing

import (
	"fmt"

	"github.com/gcbaptista/go-instant-search/index"
	"github.com/gcbaptista/go-instant-search/internal/trigram"
	"github.com/gcbaptista/go-instant-search/model"
	"github.com/gcbaptista/go-instant-search/store"
)

// Service implements the indexing logic for a single index.
// It fulfills the services.Indexer interface.
//
// Service does no locking of its own; callers serialize Add with searches.
type Service struct {
	trigramIndex  *index.TrigramIndex
	documentStore *store.DocumentStore
}

// NewService creates a new indexing Service over an existing trigram index
// and document store.
func NewService(trigramIndex *index.TrigramIndex, documentStore *store.DocumentStore) (*Service, error) {
	if trigramIndex == nil {
		return nil, fmt.Errorf("trigram index cannot be nil")
	}
	if documentStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	return &Service{
		trigramIndex:  trigramIndex,
		documentStore: documentStore,
	}, nil
}

// Add stores text under id and indexes every trigram of its normalized words.
//
// Re-adding an existing id replaces the stored text but leaves the postings of
// the previous text in place, so the old text's trigrams still count toward
// scoring for that id.
func (s *Service) Add(id uint32, text string) error {
	s.documentStore.Put(id, text)

	trigrams, err := trigram.Extract(text)
	if err != nil {
		return fmt.Errorf("failed to extract trigrams for document %d: %w", id, err)
	}

	for t := range trigrams {
		s.trigramIndex.Insert(t, id)
	}
	// Counts are refreshed in a second pass so the table only ever reflects
	// fully indexed documents.
	for t := range trigrams {
		s.trigramIndex.RefreshCount(t)
	}
	return nil
}

// AddDocuments adds a batch of documents to the index, stopping at the first failure.
// This satisfies the services.Indexer interface.
func (s *Service) AddDocuments(docs []model.Document) error {
	for _, doc := range docs {
		if err := s.Add(doc.ID, doc.Value); err != nil {
			return fmt.Errorf("failed to add document ID %d: %w", doc.ID, err)
		}
	}
	return nil
}
