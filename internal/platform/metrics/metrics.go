// Package metrics provides Prometheus instrumentation for data access and the
// HTTP API. Collectors live on a Recorder so tests can use their own registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "football"

type Recorder struct {
	gatherer prometheus.Gatherer

	apiCalls        *prometheus.CounterVec
	apiErrors       *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	breakerState    *prometheus.GaugeVec
	breakerFailures *prometheus.GaugeVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	syncRuns        *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg uses a fresh
// private registry.
func New(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := &Recorder{
		gatherer: reg,
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_calls_total",
			Help:      "Provider calls by provider, endpoint and outcome.",
		}, []string{"provider", "endpoint", "status"}),
		apiErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Provider calls that failed after retries.",
		}, []string{"provider", "endpoint"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Provider call latency including retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "endpoint"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Fresh cache reads by operation and result.",
		}, []string{"operation", "result"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_activations_total",
			Help:      "Queries answered by a fallback tier after every provider failed.",
		}, []string{"operation", "fallback_type"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state per provider (0 closed, 1 open).",
		}, []string{"provider"}),
		breakerFailures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_failures",
			Help:      "Failure count currently held by the provider breaker.",
		}, []string{"provider"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Background sync job runs by job and outcome.",
		}, []string{"job", "status"}),
	}

	reg.MustRegister(
		r.apiCalls,
		r.apiErrors,
		r.apiDuration,
		r.cacheLookups,
		r.fallbacks,
		r.breakerState,
		r.breakerFailures,
		r.httpRequests,
		r.httpDuration,
		r.syncRuns,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

func (r *Recorder) CacheLookup(operation, result string) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(operation, result).Inc()
}

func (r *Recorder) ProviderCall(provider, operation string, err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
		r.apiErrors.WithLabelValues(provider, operation).Inc()
	}
	r.apiCalls.WithLabelValues(provider, operation, status).Inc()
	r.apiDuration.WithLabelValues(provider, operation).Observe(elapsed.Seconds())
}

func (r *Recorder) FallbackActivated(operation, fallbackType string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(operation, fallbackType).Inc()
}

func (r *Recorder) BreakerState(provider string, open bool, failures int) {
	if r == nil {
		return
	}
	state := 0.0
	if open {
		state = 1
	}
	r.breakerState.WithLabelValues(provider).Set(state)
	r.breakerFailures.WithLabelValues(provider).Set(float64(failures))
}

func (r *Recorder) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Recorder) SyncRun(job string, err error) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.syncRuns.WithLabelValues(job, status).Inc()
}
