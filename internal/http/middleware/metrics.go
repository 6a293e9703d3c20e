// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for HTTP traffic and for the
// AI generation pipeline. Labels are chosen to keep cardinality bounded:
//
//   - method: HTTP method verb
//   - path:   the registered Gin route (e.g. /api/ai/plan/:user_id);
//     falls back to the raw URL path when no route matched
//   - status: numeric status code as a string
//
// Generation metrics are labelled by feature kind (plan, todo, analysis,
// advice, goals) and outcome so dashboards can track model spend per feature.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpReqs counts requests by method, route path, and status code.
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// httpLat records request duration in seconds by method and route path.
	// Status is omitted to keep histogram cardinality lower.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// httpInflight gauges the number of in-flight requests.
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// genTotal counts AI generations by feature kind and outcome
	// (ok, not_found, upstream_error, invalid_output, replay).
	genTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_generations_total",
			Help: "Total number of AI generation attempts.",
		},
		[]string{"kind", "outcome"},
	)

	// genLat records end-to-end generation latency by feature kind. Buckets
	// are tuned for LLM round trips rather than typical HTTP latency.
	genLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_generation_duration_seconds",
			Help:    "Duration of AI generation requests in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 30, 60},
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, genTotal, genLat)
}

// ObserveGeneration records one AI generation attempt for dashboards.
// Called by the AI handlers after the service returns.
func ObserveGeneration(kind, outcome string, dur time.Duration) {
	genTotal.WithLabelValues(kind, outcome).Inc()
	genLat.WithLabelValues(kind).Observe(dur.Seconds())
}

// Metrics returns a Gin middleware that instruments requests with Prometheus.
//
// Semantics:
//   - Increments http_requests_total(method, path, status) per request
//   - Observes http_request_duration_seconds(method, path) on completion
//   - Tracks http_requests_inflight gauge during handler execution
//
// The "path" label uses the registered route (c.FullPath()) to avoid
// unbounded label cardinality from raw URLs. If no route matched (e.g. 404),
// it falls back to c.Request.URL.Path.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpReqs.WithLabelValues(method, path, status).Inc()
		httpLat.WithLabelValues(method, path).Observe(dur)
	}
}
