package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gcbaptista/go-instant-search/internal/errors"
	"github.com/gcbaptista/go-instant-search/internal/logger"
	"github.com/gcbaptista/go-instant-search/model"
)

const (
	// DefaultRetention is how long finished jobs stay queryable.
	DefaultRetention = 24 * time.Hour
	cleanupInterval  = time.Hour
)

// Func is the work of a job. It should honour ctx cancellation.
type Func func(ctx context.Context, job *model.Job) error

// Manager handles background job execution and tracking
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	workers  chan struct{} // Limits concurrent jobs
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
	recorder Recorder
	log      *log.Logger
}

// NewManager creates a new job manager with specified worker count.
// recorder may be nil.
func NewManager(maxWorkers int, recorder Recorder) *Manager {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		jobs:     make(map[string]*model.Job),
		workers:  make(chan struct{}, maxWorkers),
		ctx:      ctx,
		cancel:   cancel,
		recorder: recorder,
		log:      logger.New("jobs"),
	}
}

// Start begins background cleanup of old finished jobs
func (m *Manager) Start() {
	m.log.Info("job manager started", "workers", cap(m.workers))

	m.wg.Add(1)
	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for every worker to return
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		// Cancelling under mu orders it against the ctx check and wg.Add in ExecuteJob.
		m.mu.Lock()
		m.cancel()
		m.mu.Unlock()
		m.wg.Wait()
		m.log.Info("job manager stopped")
	})
}

// CreateJob creates a new pending job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, indexName string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		IndexName: indexName,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	m.jobs[job.ID] = job
	m.log.Debug("created job", "job", job.ID, "type", job.Type, "index", job.IndexName)
	return job.ID
}

// GetJob retrieves a copy of a job by ID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns all jobs for an index, oldest first, optionally filtered by status.
// An empty indexName lists jobs of every index.
func (m *Manager) ListJobs(indexName string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Job, 0)
	for _, job := range m.jobs {
		if indexName != "" && job.IndexName != indexName {
			continue
		}
		if status != nil && job.Status != *status {
			continue
		}
		result = append(result, copyJob(job))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// ExecuteJob runs jobFunc for a pending job on a worker goroutine.
// The job stays pending until a worker slot frees up.
func (m *Manager) ExecuteJob(jobID string, jobFunc Func) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	if m.ctx.Err() != nil {
		m.mu.Unlock()
		m.finish(jobID, model.JobStatusCancelled, "job manager shutting down", 0)
		return fmt.Errorf("job manager is shutting down")
	}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		select {
		case m.workers <- struct{}{}:
		case <-m.ctx.Done():
			m.finish(jobID, model.JobStatusCancelled, "job manager shutting down", 0)
			return
		}
		defer func() { <-m.workers }()

		m.mu.Lock()
		job.Status = model.JobStatusRunning
		startTime := time.Now()
		job.StartedAt = &startTime
		m.mu.Unlock()

		err := jobFunc(m.ctx, job)
		elapsed := time.Since(startTime)

		switch {
		case err != nil && m.ctx.Err() != nil:
			m.finish(jobID, model.JobStatusCancelled, err.Error(), elapsed)
			m.log.Warn("job cancelled", "job", jobID, "elapsed", elapsed)
		case err != nil:
			m.finish(jobID, model.JobStatusFailed, err.Error(), elapsed)
			m.log.Error("job failed", "job", jobID, "elapsed", elapsed, "err", err)
		default:
			m.finish(jobID, model.JobStatusCompleted, "", elapsed)
			m.log.Info("job completed", "job", jobID, "type", job.Type, "elapsed", elapsed)
		}
	}()

	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}
	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

// Stats counts tracked jobs by status.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{
		Total:    len(m.jobs),
		ByStatus: make(map[model.JobStatus]int),
		Workers:  cap(m.workers),
		Busy:     len(m.workers),
	}
	for _, job := range m.jobs {
		stats.ByStatus[job.Status]++
	}
	return stats
}

// finish moves a job to a final status and reports it to the recorder.
func (m *Manager) finish(jobID string, status model.JobStatus, errorMsg string, elapsed time.Duration) {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return
	}
	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}
	now := time.Now()
	job.CompletedAt = &now
	jobType := job.Type
	m.mu.Unlock()

	if m.recorder != nil {
		m.recorder.JobFinished(jobType, status, elapsed)
	}
}

func (m *Manager) cleanupRoutine() {
	defer m.wg.Done()
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(DefaultRetention)
		case <-m.ctx.Done():
			return
		}
	}
}

// CleanupOldJobs removes finished jobs that completed more than maxAge ago
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.Status.IsFinal() && job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.log.Info("cleaned up old jobs", "count", cleaned)
	}
	return cleaned
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	return &jobCopy
}
