// Package telemetry defines the Prometheus metrics shared across the
// HTTP surface and the pipeline.
package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteforge_http_requests_total",
			Help: "Total number of HTTP requests, labeled by method and code.",
		},
		[]string{"method", "code"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "siteforge_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, labeled by method and route.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	pipelineStageRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteforge_pipeline_stage_runs_total",
			Help: "Total stage executions, labeled by stage and outcome.",
		},
		[]string{"stage", "outcome"},
	)
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveStageRun records one pipeline stage execution.
func ObserveStageRun(stage string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	pipelineStageRuns.WithLabelValues(stage, outcome).Inc()
}
