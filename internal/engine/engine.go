package engine

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/gcbaptista/go-instant-search/config"
	"github.com/gcbaptista/go-instant-search/internal/errors"
	"github.com/gcbaptista/go-instant-search/internal/jobs"
	"github.com/gcbaptista/go-instant-search/internal/logger"
	"github.com/gcbaptista/go-instant-search/internal/metrics"
	"github.com/gcbaptista/go-instant-search/model"
	"github.com/gcbaptista/go-instant-search/services"
)

// Engine manages multiple in-memory trigram indexes.
// It implements the services.AsyncIndexManager and services.JobManager interfaces.
type Engine struct {
	mu         sync.RWMutex
	indexes    map[string]*IndexInstance
	jobManager *jobs.Manager
	metrics    *metrics.Metrics // may be nil
	log        *log.Logger
}

var (
	_ services.AsyncIndexManager = (*Engine)(nil)
	_ services.JobManager        = (*Engine)(nil)
	_ services.IndexAccessor     = (*IndexInstance)(nil)
)

// NewEngine creates an engine with a background job manager limited to
// maxJobWorkers concurrent jobs. m may be nil to disable metrics.
func NewEngine(maxJobWorkers int, m *metrics.Metrics) *Engine {
	var recorder jobs.Recorder
	if m != nil {
		recorder = m
	}
	jobManager := jobs.NewManager(maxJobWorkers, recorder)
	jobManager.Start()

	return &Engine{
		indexes:    make(map[string]*IndexInstance),
		jobManager: jobManager,
		metrics:    m,
		log:        logger.New("engine"),
	}
}

// Close stops the job manager, cancelling jobs still running.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// GetIndex retrieves an index by its name.
func (e *Engine) GetIndex(name string) (services.IndexAccessor, error) {
	instance, err := e.instance(name)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// GetIndexSettings retrieves the settings for a specific index.
func (e *Engine) GetIndexSettings(name string) (config.IndexSettings, error) {
	instance, err := e.instance(name)
	if err != nil {
		return config.IndexSettings{}, err
	}
	return instance.Settings(), nil
}

// ListIndexes returns the names of all indexes in ascending order.
func (e *Engine) ListIndexes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.indexes))
	for name := range e.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetJob retrieves a background job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs lists the jobs of an index, optionally filtered by status.
func (e *Engine) ListJobs(indexName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(indexName, status)
}

// JobStats returns counts of tracked jobs.
func (e *Engine) JobStats() jobs.Stats {
	return e.jobManager.Stats()
}

func (e *Engine) instance(name string) (*IndexInstance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return nil, errors.NewIndexNotFoundError(name)
	}
	return instance, nil
}
