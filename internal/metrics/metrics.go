// Package metrics provides Prometheus metrics for linkedin-assistant.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "linkedin_assistant"

var (
	// BackendRequestsTotal counts backend operations.
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of backend operations",
		},
		[]string{"operation", "status"},
	)

	// BackendDuration measures backend operation duration.
	BackendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_duration_seconds",
			Help:      "Duration of backend operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CommentsTotal counts comment lifecycle events by tone.
	CommentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_total",
			Help:      "Total number of generated, posted and scheduled comments",
		},
		[]string{"action", "tone"},
	)

	// WritingSamples tracks the number of stored writing samples.
	WritingSamples = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "writing_samples",
			Help:      "Number of stored writing samples",
		},
	)

	// HTTPRequestsTotal counts API requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "route", "code"},
	)
)

// RecordBackend records one backend operation.
func RecordBackend(operation string, err error, seconds float64) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	BackendRequestsTotal.WithLabelValues(operation, status).Inc()
	BackendDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordComment records a comment lifecycle event.
func RecordComment(action, tone string) {
	CommentsTotal.WithLabelValues(action, tone).Inc()
}

// SetWritingSamples sets the writing sample gauge.
func SetWritingSamples(n int) {
	WritingSamples.Set(float64(n))
}

// RecordHTTP records an API request.
func RecordHTTP(method, route string, code int) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
