// Package testing provides utilities and helpers for testing the instant search engine.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-instant-search/config"
	"github.com/gcbaptista/go-instant-search/index"
	"github.com/gcbaptista/go-instant-search/internal/engine"
	"github.com/gcbaptista/go-instant-search/internal/metrics"
	"github.com/gcbaptista/go-instant-search/model"
	"github.com/gcbaptista/go-instant-search/services"
)

// CreateTestEngine creates a new engine for testing and closes it when the test ends.
// m may be nil.
func CreateTestEngine(t *testing.T, m *metrics.Metrics) *engine.Engine {
	t.Helper()
	eng := engine.NewEngine(2, m)
	t.Cleanup(eng.Close)
	return eng
}

// CreateTestIndex creates an index named indexName using the given posting store.
// An empty store selects the default.
func CreateTestIndex(t *testing.T, eng *engine.Engine, indexName string, store index.StoreKind) config.IndexSettings {
	t.Helper()
	settings := config.IndexSettings{Name: indexName, PostingStore: store}

	require.NoError(t, eng.CreateIndex(settings), "Failed to create test index")

	created, err := eng.GetIndexSettings(indexName)
	require.NoError(t, err)
	return created
}

// TestDocuments is a small corpus mixing exact, partial and unrelated values.
func TestDocuments() []model.Document {
	return []model.Document{
		model.NewDocument(1, "a1sdfasdf qwert zzzzz"),
		model.NewDocument(5, "assdqwefdf"),
		model.NewDocument(3, "lorem ipsum dolor"),
		model.NewDocument(4, "sit amet consectetur"),
		model.NewDocument(6, "adipiscing elit"),
		model.NewDocument(7, "crab cake"),
	}
}

// AddTestDocuments adds TestDocuments to an index synchronously.
func AddTestDocuments(t *testing.T, eng *engine.Engine, indexName string) []model.Document {
	t.Helper()
	indexAccessor, err := eng.GetIndex(indexName)
	require.NoError(t, err, "Failed to get index accessor")

	docs := TestDocuments()
	require.NoError(t, indexAccessor.AddDocuments(docs), "Failed to add test documents")
	return docs
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJobCompletion polls a job until it reaches a final status or times out.
// A failed or cancelled job fails the test.
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				if opts.LogProgress {
					t.Logf("Job %s completed in %v", jobID, job.CompletedAt.Sub(job.CreatedAt))
				}
				return job
			case model.JobStatusFailed, model.JobStatusCancelled:
				t.Fatalf("Job %s ended as %s: %s", jobID, job.Status, job.Error)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedIndex string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedIndex, job.IndexName, "Job index name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// AsyncOperationTest represents a test case for async operations
type AsyncOperationTest struct {
	Name            string
	SetupFunc       func(t *testing.T, eng *engine.Engine) string                   // Returns index name
	OperationFunc   func(t *testing.T, eng *engine.Engine, indexName string) string // Returns job ID
	ValidateFunc    func(t *testing.T, eng *engine.Engine, indexName string, job *model.Job)
	ExpectedJobType model.JobType
}

// RunAsyncOperationTests runs a suite of async operation tests
func RunAsyncOperationTests(t *testing.T, tests []AsyncOperationTest) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			eng := CreateTestEngine(t, nil)

			indexName := tt.SetupFunc(t, eng)

			jobID := tt.OperationFunc(t, eng, indexName)
			require.NotEmpty(t, jobID, "Job ID should not be empty")

			job := WaitForJobCompletion(t, eng, jobID, DefaultJobPollingOptions())
			AssertJobCompleted(t, job, tt.ExpectedJobType, indexName)

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, eng, indexName, job)
			}
		})
	}
}

// SearchTestCase represents a test case for search operations
type SearchTestCase struct {
	Name                 string
	Query                string
	ExpectedExact        []uint32 // IDs in rank order
	ExpectedAlternatives []uint32 // IDs in rank order
	ExpectedFallback     bool
	ValidateFunc         func(t *testing.T, result *services.SearchResult)
}

// ResultIDs returns the IDs of items in rank order, or nil when there are none.
func ResultIDs(items []services.ResultItem) []uint32 {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uint32, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// RunSearchTests runs a suite of search tests against an index
func RunSearchTests(t *testing.T, searcher services.Searcher, tests []SearchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := searcher.Search(tt.Query)
			require.NoError(t, err, "Search should not fail")

			assert.Equal(t, tt.ExpectedExact, ResultIDs(result.ExactMatches), "exact matches")
			assert.Equal(t, tt.ExpectedAlternatives, ResultIDs(result.AlternativeMatches), "alternative matches")
			assert.Equal(t, tt.ExpectedFallback, result.Fallback, "fallback")

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, &result)
			}
		})
	}
}
