package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-instant-search/internal/errors"
	"github.com/gcbaptista/go-instant-search/internal/jobs"
	"github.com/gcbaptista/go-instant-search/model"
	"github.com/gcbaptista/go-instant-search/services"
)

// jobStatsProvider is implemented by engines that expose job counters.
type jobStatsProvider interface {
	JobStats() jobs.Stats
}

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendNotImplementedError(c, "Job management")
		return
	}

	job, err := jobManager.GetJob(jobID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "get job", err)
		return
	}

	response := gin.H{"job": job}
	if job.Progress != nil {
		response["progress_percentage"] = job.Progress.GetProgressPercentage()
	}
	c.JSON(http.StatusOK, response)
}

// ListJobsHandler handles requests to list jobs for an index
func (api *API) ListJobsHandler(c *gin.Context) {
	_, indexName, ok := api.getIndex(c)
	if !ok {
		return
	}
	api.listJobs(c, indexName)
}

// ListAllJobsHandler lists jobs of every index
func (api *API) ListAllJobsHandler(c *gin.Context) {
	api.listJobs(c, "")
}

func (api *API) listJobs(c *gin.Context, indexName string) {
	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendNotImplementedError(c, "Job management")
		return
	}

	var statusFilter *model.JobStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobList := jobManager.ListJobs(indexName, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":       jobList,
		"index_name": indexName,
		"total":      len(jobList),
	})
}

// JobStatsHandler handles requests for job counters and worker usage
func (api *API) JobStatsHandler(c *gin.Context) {
	provider, ok := api.engine.(jobStatsProvider)
	if !ok {
		SendNotImplementedError(c, "Job statistics")
		return
	}

	stats := provider.JobStats()
	c.JSON(http.StatusOK, gin.H{
		"stats":        stats,
		"success_rate": stats.SuccessRate(),
	})
}
