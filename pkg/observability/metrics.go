package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	engineCalls    *prometheus.CounterVec
	engineDuration *prometheus.HistogramVec
	viewCacheHits  prometheus.Counter
	graphReloads   prometheus.Counter
}

// NewMetrics creates and registers the application collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cadence",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cadence",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		engineCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cadence",
			Subsystem: "engine",
			Name:      "calls_total",
			Help:      "Graph engine invocations by operation.",
		}, []string{"operation"}),
		engineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cadence",
			Subsystem: "engine",
			Name:      "call_duration_seconds",
			Help:      "Graph engine latency by operation.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"operation"}),
		viewCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cadence",
			Subsystem: "engine",
			Name:      "view_cache_hits_total",
			Help:      "Composed view requests served from the memo cache.",
		}),
		graphReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cadence",
			Subsystem: "dataset",
			Name:      "reloads_total",
			Help:      "Successful dataset hot reloads.",
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.engineCalls,
		m.engineDuration,
		m.viewCacheHits,
		m.graphReloads,
	)

	return m
}

// ObserveHTTP records a completed HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveEngine records a graph engine invocation.
func (m *Metrics) ObserveEngine(operation string, duration time.Duration) {
	m.engineCalls.WithLabelValues(operation).Inc()
	m.engineDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheHit records a memoized view served without recomputation.
func (m *Metrics) RecordCacheHit() {
	m.viewCacheHits.Inc()
}

// RecordGraphReload records a successful dataset reload.
func (m *Metrics) RecordGraphReload() {
	m.graphReloads.Inc()
}
