package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gcbaptista/go-instant-search/config"
	"github.com/gcbaptista/go-instant-search/index"
	"github.com/gcbaptista/go-instant-search/internal/errors"
	"github.com/gcbaptista/go-instant-search/internal/indexing"
	"github.com/gcbaptista/go-instant-search/internal/metrics"
	"github.com/gcbaptista/go-instant-search/internal/search"
	"github.com/gcbaptista/go-instant-search/model"
	"github.com/gcbaptista/go-instant-search/services"
	"github.com/gcbaptista/go-instant-search/store"
)

// IndexInstance holds all components and services for a single index.
// It implements the services.IndexAccessor interface.
//
// Every operation takes the same exclusive lock: adds mutate posting sets
// and the count table in several steps, and searches compact posting sets
// while iterating them.
type IndexInstance struct {
	mu            sync.Mutex
	settings      *config.IndexSettings
	trigramIndex  *index.TrigramIndex
	documentStore *store.DocumentStore
	indexer       *indexing.Service
	searcher      *search.Service
	metrics       *metrics.Metrics
}

// NewIndexInstance creates and initializes a new IndexInstance.
func NewIndexInstance(settings config.IndexSettings, m *metrics.Metrics) (*IndexInstance, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, errors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	factory, err := settings.StoreFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to build posting store factory: %w", err)
	}

	trigramIndex := index.NewTrigramIndex(factory)
	docStore := store.NewDocumentStore()

	indexerService, err := indexing.NewService(trigramIndex, docStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer service: %w", err)
	}
	searchService, err := search.NewService(trigramIndex, docStore, &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &IndexInstance{
		settings:      &settings,
		trigramIndex:  trigramIndex,
		documentStore: docStore,
		indexer:       indexerService,
		searcher:      searchService,
		metrics:       m,
	}, nil
}

// Add indexes a single document.
func (i *IndexInstance) Add(id uint32, text string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.indexer.Add(id, text); err != nil {
		return err
	}
	i.metrics.ObserveIndexed(i.settings.Name, 1, i.documentStore.Len())
	return nil
}

// AddDocuments indexes a batch of documents under a single lock.
func (i *IndexInstance) AddDocuments(docs []model.Document) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	err := i.indexer.AddDocuments(docs)
	i.metrics.ObserveIndexed(i.settings.Name, len(docs), i.documentStore.Len())
	return err
}

// Search runs a query against the index.
func (i *IndexInstance) Search(term string) (services.SearchResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	result, err := i.searcher.Search(term)
	if err != nil {
		return services.SearchResult{}, err
	}
	i.metrics.ObserveSearch(i.settings.Name, result)
	return result, nil
}

// MultiSearch runs several named queries; each takes the instance lock in turn.
func (i *IndexInstance) MultiSearch(ctx context.Context, queries []services.NamedSearchQuery) (*services.MultiSearchResult, error) {
	return search.MultiSearch(ctx, i, queries)
}

// Settings returns a copy of the index settings.
func (i *IndexInstance) Settings() config.IndexSettings {
	i.mu.Lock()
	defer i.mu.Unlock()
	return *i.settings
}

// Stats describes the current size of the index.
func (i *IndexInstance) Stats() services.IndexStats {
	i.mu.Lock()
	defer i.mu.Unlock()

	return services.IndexStats{
		Name:          i.settings.Name,
		Documents:     i.documentStore.Len(),
		Vocabulary:    i.trigramIndex.Vocabulary(),
		TotalPostings: i.trigramIndex.TotalPostings(),
		PostingStore:  string(i.settings.PostingStore),
		PostingBytes:  i.trigramIndex.PostingBytes(),
	}
}

// name returns the current index name.
func (i *IndexInstance) name() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.settings.Name
}

func (i *IndexInstance) rename(newName string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.settings.Name = newName
}
