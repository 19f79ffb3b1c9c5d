package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptopulse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cryptopulse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Upstream API metrics
	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptopulse_upstream_calls_total",
			Help: "Total number of upstream API calls",
		},
		[]string{"upstream", "endpoint", "status"}, // status: success|error|rate_limited
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cryptopulse_upstream_latency_seconds",
			Help:    "Upstream API latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"upstream", "endpoint"},
	)

	UpstreamFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptopulse_upstream_fallbacks_total",
			Help: "Total number of requests served from synthetic data",
		},
		[]string{"upstream", "endpoint"},
	)

	// Cache metrics
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptopulse_cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "status"}, // operation: get|set, status: hit|miss|error|ok
	)

	// Sentiment metrics
	SentimentAnalyses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptopulse_sentiment_analyses_total",
			Help: "Total number of sentiment analyses",
		},
		[]string{"source", "label"}, // source: text|reddit|stocks
	)

	// Worker metrics
	WorkerExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptopulse_worker_executions_total",
			Help: "Total number of worker executions",
		},
		[]string{"worker", "status"}, // status: success|error
	)

	WorkerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cryptopulse_worker_duration_seconds",
			Help:    "Worker execution duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"worker"},
	)

	WorkerLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cryptopulse_worker_last_run_timestamp",
			Help: "Unix timestamp of last worker execution",
		},
		[]string{"worker"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)

	prometheus.MustRegister(UpstreamCalls)
	prometheus.MustRegister(UpstreamLatency)
	prometheus.MustRegister(UpstreamFallbacks)

	prometheus.MustRegister(CacheOps)
	prometheus.MustRegister(SentimentAnalyses)

	prometheus.MustRegister(WorkerExecutions)
	prometheus.MustRegister(WorkerDuration)
	prometheus.MustRegister(WorkerLastRun)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records a served HTTP request
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUpstreamCall records a call to an external API
func RecordUpstreamCall(upstream, endpoint string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	UpstreamCalls.WithLabelValues(upstream, endpoint, status).Inc()
	UpstreamLatency.WithLabelValues(upstream, endpoint).Observe(latency.Seconds())
}

// RecordUpstreamFallback records a request served from synthetic data
func RecordUpstreamFallback(upstream, endpoint string) {
	UpstreamFallbacks.WithLabelValues(upstream, endpoint).Inc()
}

// RecordCacheGet records a cache lookup outcome
func RecordCacheGet(hit bool) {
	status := "miss"
	if hit {
		status = "hit"
	}
	CacheOps.WithLabelValues("get", status).Inc()
}

// RecordCacheSet records a cache write outcome
func RecordCacheSet(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CacheOps.WithLabelValues("set", status).Inc()
}

// RecordSentimentAnalysis records one completed analysis
func RecordSentimentAnalysis(source, label string) {
	SentimentAnalyses.WithLabelValues(source, label).Inc()
}

// RecordWorkerExecution records a worker execution
func RecordWorkerExecution(worker string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	WorkerExecutions.WithLabelValues(worker, status).Inc()
	WorkerDuration.WithLabelValues(worker).Observe(duration.Seconds())
	WorkerLastRun.WithLabelValues(worker).SetToCurrentTime()
}
