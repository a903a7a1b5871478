package monitoring

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fometer"

// Metrics holds the Prometheus collectors of the service on a private
// registry, plus a few counters for the health endpoint.
type Metrics struct {
	registry *prometheus.Registry

	samples         *prometheus.CounterVec
	sampleDuration  prometheus.Histogram
	scoredResponses *prometheus.CounterVec
	functionScores  *prometheus.HistogramVec
	derivedTypes    *prometheus.CounterVec
	runs            *prometheus.CounterVec
	cacheRequests   *prometheus.CounterVec
	collectorTries  *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec

	requestCount int64
	errorCount   int64
	StartTime    time.Time
}

// NewMetrics creates and registers every collector
func NewMetrics() *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		StartTime: time.Now(),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Scenario selections by mode and source.",
		}, []string{"mode", "source"}),
		sampleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sample_duration_seconds",
			Help:      "Time spent selecting scenarios.",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		}),
		scoredResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scored_responses_total",
			Help:      "Responses seen by the scoring engine.",
		}, []string{"result"}),
		functionScores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "function_scores",
			Help:      "Completed-run scores on the 0-40 scale by function.",
			Buckets:   prometheus.LinearBuckets(0, 5, 9),
		}, []string{"function"}),
		derivedTypes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derived_types_total",
			Help:      "Type derivations by scheme and number of unresolved letters.",
		}, []string{"scheme", "letters_unresolved"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Run lifecycle events.",
		}, []string{"event"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Response cache lookups.",
		}, []string{"result"}),
		collectorTries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collector_attempts_total",
			Help:      "Answer collector attempts by collector and outcome.",
		}, []string{"collector", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.samples,
		m.sampleDuration,
		m.scoredResponses,
		m.functionScores,
		m.derivedTypes,
		m.runs,
		m.cacheRequests,
		m.collectorTries,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry exposes the private registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordSample counts one selection
func (m *Metrics) RecordSample(mode int, source string, duration time.Duration) {
	m.samples.WithLabelValues(strconv.Itoa(mode), source).Inc()
	m.sampleDuration.Observe(duration.Seconds())
}

// RecordScoring counts resolved and ignored responses
func (m *Metrics) RecordScoring(resolved, ignored int) {
	m.scoredResponses.WithLabelValues("resolved").Add(float64(resolved))
	m.scoredResponses.WithLabelValues("ignored").Add(float64(ignored))
}

// RecordScores observes each function's score of a completed run
func (m *Metrics) RecordScores(scores map[string]float64) {
	for function, score := range scores {
		m.functionScores.WithLabelValues(function).Observe(score)
	}
}

// RecordDerivation counts one derived code
func (m *Metrics) RecordDerivation(scheme string, unresolved int) {
	m.derivedTypes.WithLabelValues(scheme, strconv.Itoa(unresolved)).Inc()
}

// RecordRun counts a run event (created, completed, empty, deleted, simulated)
func (m *Metrics) RecordRun(event string) {
	m.runs.WithLabelValues(event).Inc()
}

// IncrementCacheHit increments cache hit count
func (m *Metrics) IncrementCacheHit() {
	m.cacheRequests.WithLabelValues("hit").Inc()
}

// IncrementCacheMiss increments cache miss count
func (m *Metrics) IncrementCacheMiss() {
	m.cacheRequests.WithLabelValues("miss").Inc()
}

// RecordCollectorAttempt counts one collector call
func (m *Metrics) RecordCollectorAttempt(collector string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.collectorTries.WithLabelValues(collector, outcome).Inc()
}

// RecordRequest records an HTTP request
func (m *Metrics) RecordRequest(method, route string, status int, duration time.Duration) {
	atomic.AddInt64(&m.requestCount, 1)
	if status >= 400 {
		atomic.AddInt64(&m.errorCount, 1)
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// GetStats returns a small snapshot for the health endpoint
func (m *Metrics) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"uptime":         time.Since(m.StartTime).String(),
		"total_requests": atomic.LoadInt64(&m.requestCount),
		"total_errors":   atomic.LoadInt64(&m.errorCount),
	}
}
