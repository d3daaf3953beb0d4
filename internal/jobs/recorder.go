package jobs

import (
	"time"

	"github.com/gcbaptista/go-instant-search/model"
)

// Recorder receives job outcomes, typically to export them as metrics.
// *metrics.Metrics satisfies it.
type Recorder interface {
	JobFinished(jobType model.JobType, status model.JobStatus, elapsed time.Duration)
}

// Stats is a point-in-time count of tracked jobs by status.
type Stats struct {
	Total    int                     `json:"total"`
	ByStatus map[model.JobStatus]int `json:"by_status"`
	Workers  int                     `json:"workers"`
	Busy     int                     `json:"busy"` // Workers currently running a job
}

// SuccessRate returns completed jobs as a fraction of finished jobs.
func (s Stats) SuccessRate() float64 {
	completed := s.ByStatus[model.JobStatusCompleted]
	finished := completed + s.ByStatus[model.JobStatusFailed] + s.ByStatus[model.JobStatusCancelled]
	if finished == 0 {
		return 0
	}
	return float64(completed) / float64(finished)
}
