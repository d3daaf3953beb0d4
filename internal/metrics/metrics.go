// Package metrics defines the Prometheus collectors of the instant search
// server and exposes an HTTP handler for scraping.
//
// All recording methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gcbaptista/go-instant-search/model"
	"github.com/gcbaptista/go-instant-search/services"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeExact       = "exact"
	OutcomeAlternative = "alternative"
	OutcomeEmpty       = "empty"
	OutcomeFallback    = "fallback"
)

// Metrics holds all Prometheus collectors for the server.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SearchQueriesTotal  *prometheus.CounterVec
	SearchLatency       *prometheus.HistogramVec
	DocsIndexedTotal    *prometheus.CounterVec
	IndexDocuments      *prometheus.GaugeVec
	JobsTotal           *prometheus.CounterVec
	JobDuration         *prometheus.HistogramVec
}

// New creates all collectors and registers them on a fresh registry,
// together with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "path"},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by index and outcome (exact, alternative, empty, fallback).",
			},
			[]string{"index", "outcome"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"index"},
		),
		DocsIndexedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docs_indexed_total",
				Help: "Total documents added, by index.",
			},
			[]string{"index"},
		),
		IndexDocuments: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "index_documents",
				Help: "Number of documents currently stored per index.",
			},
			[]string{"index"},
		),
		JobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobs_total",
				Help: "Background jobs by type and final status.",
			},
			[]string{"type", "status"},
		),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "job_duration_seconds",
				Help:    "Background job execution time in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.DocsIndexedTotal,
		m.IndexDocuments,
		m.JobsTotal,
		m.JobDuration,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Outcome classifies a search result for the "outcome" label.
func Outcome(result services.SearchResult) string {
	switch {
	case result.Fallback:
		return OutcomeFallback
	case len(result.ExactMatches) > 0:
		return OutcomeExact
	case len(result.AlternativeMatches) > 0:
		return OutcomeAlternative
	default:
		return OutcomeEmpty
	}
}

// ObserveSearch records one completed search against indexName.
func (m *Metrics) ObserveSearch(indexName string, result services.SearchResult) {
	if m == nil {
		return
	}
	m.SearchQueriesTotal.WithLabelValues(indexName, Outcome(result)).Inc()
	m.SearchLatency.WithLabelValues(indexName).Observe(result.Elapsed.Seconds())
}

// ObserveIndexed records n documents added to indexName, which now stores total documents.
func (m *Metrics) ObserveIndexed(indexName string, n, total int) {
	if m == nil {
		return
	}
	m.DocsIndexedTotal.WithLabelValues(indexName).Add(float64(n))
	m.IndexDocuments.WithLabelValues(indexName).Set(float64(total))
}

// ForgetIndex drops the per-index series of a deleted or renamed index.
func (m *Metrics) ForgetIndex(indexName string) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{"index": indexName}
	m.SearchQueriesTotal.DeletePartialMatch(labels)
	m.SearchLatency.DeletePartialMatch(labels)
	m.DocsIndexedTotal.DeletePartialMatch(labels)
	m.IndexDocuments.DeletePartialMatch(labels)
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// JobFinished records a background job reaching a final status.
func (m *Metrics) JobFinished(jobType model.JobType, status model.JobStatus, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.JobsTotal.WithLabelValues(string(jobType), string(status)).Inc()
	m.JobDuration.WithLabelValues(string(jobType)).Observe(elapsed.Seconds())
}
