package services

import (
	"context"
	"time"

	"github.com/gcbaptista/go-instant-search/config"
	"github.com/gcbaptista/go-instant-search/model"
)

// ResultItem is a single ranked document in a search result.
type ResultItem struct {
	ID    uint32 `json:"id"`
	Value string `json:"value"` // Original stored text
	Score int    `json:"score"` // Percentage of query trigrams found in the document, 0..100
	Rank  int    `json:"rank"`  // 0-based position within its group
}

// SearchResult holds exact and alternative ("did you mean") matches for a query.
type SearchResult struct {
	ExactMatches       []ResultItem  `json:"exact_matches"`
	AlternativeMatches []ResultItem  `json:"alternative_matches"`
	Elapsed            time.Duration `json:"elapsed_ns"`
	Fallback           bool          `json:"fallback"` // True when the query had no trigrams and was answered by a full scan
	QueryId            string        `json:"query_id"` // unique UUID for this search query
}

// TotalMatches returns the number of exact and alternative matches.
func (r SearchResult) TotalMatches() int {
	return len(r.ExactMatches) + len(r.AlternativeMatches)
}

// NamedSearchQuery is a single named query within a multi-search request.
type NamedSearchQuery struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// MultiSearchResult represents the response from a multi-search operation
type MultiSearchResult struct {
	Results          map[string]SearchResult `json:"results"`
	TotalQueries     int                     `json:"total_queries"`
	ProcessingTimeMs float64                 `json:"processing_time_ms"`
}

// IndexStats describes the size of an index.
type IndexStats struct {
	Name          string `json:"name"`
	Documents     int    `json:"documents"`
	Vocabulary    int    `json:"vocabulary"`     // Trigrams with at least one posting
	TotalPostings int    `json:"total_postings"` // Sum of all posting set sizes
	PostingStore  string `json:"posting_store"`
	PostingBytes  uint64 `json:"posting_bytes"` // Estimated posting memory; 0 for stores that cannot estimate it
}

// Indexer defines operations for adding data to an index
type Indexer interface {
	Add(id uint32, text string) error
	AddDocuments(docs []model.Document) error
}

// Searcher defines operations for querying an index
type Searcher interface {
	Search(term string) (SearchResult, error)
}

// MultiSearcher defines operations for performing multiple queries in a single request
type MultiSearcher interface {
	MultiSearch(ctx context.Context, queries []NamedSearchQuery) (*MultiSearchResult, error)
}

// IndexAccessor combines everything a caller can do with a single index.
type IndexAccessor interface {
	Indexer
	Searcher
	MultiSearcher
	Settings() config.IndexSettings
	Stats() IndexStats
}

// IndexManager manages the lifecycle of indices
type IndexManager interface {
	CreateIndex(settings config.IndexSettings) error
	GetIndex(name string) (IndexAccessor, error)
	GetIndexSettings(name string) (config.IndexSettings, error)
	RenameIndex(oldName, newName string) error
	DeleteIndex(name string) error
	ListIndexes() []string
}

// AsyncIndexManager extends IndexManager with background bulk indexing.
type AsyncIndexManager interface {
	IndexManager
	AddDocumentsAsync(indexName string, docs []model.Document) (string, error) // Returns job ID
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(indexName string, status *model.JobStatus) []*model.Job
}
