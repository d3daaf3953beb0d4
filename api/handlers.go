package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-instant-search/internal/errors"
	"github.com/gcbaptista/go-instant-search/internal/logger"
	"github.com/gcbaptista/go-instant-search/internal/metrics"
	"github.com/gcbaptista/go-instant-search/services"
)

const (
	// DefaultSyncAddLimit is the largest batch indexed inside the request;
	// larger batches run as a background job.
	DefaultSyncAddLimit = 1000
	// DefaultMaxBodyBytes bounds request bodies.
	DefaultMaxBodyBytes = 32 << 20
)

// Options tune the HTTP surface. Zero values select defaults.
type Options struct {
	SyncAddLimit int
	MaxBodyBytes int64
	Metrics      *metrics.Metrics // nil disables the metrics endpoint and middleware
	MetricsPath  string
}

// API holds dependencies for API handlers, primarily the index manager.
type API struct {
	engine       services.IndexManager
	syncAddLimit int
	log          *log.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.IndexManager, syncAddLimit int) *API {
	if syncAddLimit <= 0 {
		syncAddLimit = DefaultSyncAddLimit
	}
	return &API{
		engine:       engine,
		syncAddLimit: syncAddLimit,
		log:          logger.New("api"),
	}
}

// SetupRoutes registers middleware and all API routes on router.
func SetupRoutes(router *gin.Engine, engine services.IndexManager, opts Options) {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	apiHandler := NewAPI(engine, opts.SyncAddLimit)

	router.Use(
		RequestIDMiddleware(),
		RequestLoggerMiddleware(apiHandler.log),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(opts.MaxBodyBytes),
	)
	if opts.Metrics != nil {
		router.Use(MetricsMiddleware(opts.Metrics))
		router.GET(opts.MetricsPath, gin.WrapH(opts.Metrics.Handler()))
	}

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListAllJobsHandler)     // List jobs of every index
		jobRoutes.GET("/stats", apiHandler.JobStatsHandler) // Job counts by status
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)  // Get job status by ID
	}

	// Index management routes
	indexRoutes := router.Group("/indexes")
	{
		indexRoutes.POST("", apiHandler.CreateIndexHandler)                   // Create a new index
		indexRoutes.GET("", apiHandler.ListIndexesHandler)                    // List all indexes
		indexRoutes.GET("/:indexName", apiHandler.GetIndexHandler)            // Get index settings
		indexRoutes.DELETE("/:indexName", apiHandler.DeleteIndexHandler)      // Delete an index
		indexRoutes.POST("/:indexName/rename", apiHandler.RenameIndexHandler) // Rename an index
		indexRoutes.GET("/:indexName/stats", apiHandler.GetIndexStatsHandler) // Get index statistics
		indexRoutes.GET("/:indexName/jobs", apiHandler.ListJobsHandler)       // List jobs for an index

		indexRoutes.PUT("/:indexName/documents", apiHandler.AddDocumentsHandler) // Add/replace documents

		// Search routes per index
		indexRoutes.GET("/:indexName/_search", apiHandler.QuickSearchHandler)
		indexRoutes.POST("/:indexName/_search", apiHandler.SearchHandler)
		indexRoutes.POST("/:indexName/_multi_search", apiHandler.MultiSearchHandler)
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-instant-search",
		"indexes":   len(api.engine.ListIndexes()),
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	})
}

// getIndex resolves the :indexName parameter, sending the error response itself
// when the index cannot be used.
func (api *API) getIndex(c *gin.Context) (services.IndexAccessor, string, bool) {
	indexName := c.Param("indexName")

	if result := ValidateIndexName(indexName); result.HasErrors() {
		SendValidationError(c, result)
		return nil, indexName, false
	}

	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return nil, indexName, false
		}
		SendInternalError(c, "get index", err)
		return nil, indexName, false
	}
	return indexAccessor, indexName, true
}
