package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventorymgr"

// Remote call outcomes
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// Metrics holds the Prometheus collectors for the inventory service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheErrors *prometheus.CounterVec

	remoteCalls        *prometheus.CounterVec
	remoteCallDuration *prometheus.HistogramVec

	discoveredResources *prometheus.GaugeVec
	aggregationDuration *prometheus.HistogramVec
	degraded            prometheus.Gauge

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers every collector with reg. Passing nil uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache lookups that found a value",
		}, []string{"operation"}),
		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache lookups that found nothing",
		}, []string{"operation"}),
		cacheErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "errors_total",
			Help:      "Cache operations that failed and were treated as a miss",
		}, []string{"operation"}),
		remoteCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "calls_total",
			Help:      "Provider API calls by operation and outcome",
		}, []string{"operation", "status"}),
		remoteCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "call_duration_seconds",
			Help:      "Provider API call latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		discoveredResources: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "discovered_resources",
			Help:      "Resources returned by the last aggregation, per category",
		}, []string{"category"}),
		aggregationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Time spent building an aggregate response",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"mode"}),
		degraded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "degraded",
			Help:      "1 when serving synthetic data instead of the live provider",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "method", "code"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// RecordCacheHit records a cache hit for the given operation (key family)
func (m *Metrics) RecordCacheHit(operation string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(operation).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(operation string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(operation).Inc()
}

// RecordCacheError records a cache failure
func (m *Metrics) RecordCacheError(operation string) {
	if m == nil {
		return
	}
	m.cacheErrors.WithLabelValues(operation).Inc()
}

// RecordRemoteCall records one provider API call
func (m *Metrics) RecordRemoteCall(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.remoteCalls.WithLabelValues(operation, status).Inc()
	m.remoteCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDiscoveredResources sets the resource count for a category
func (m *Metrics) SetDiscoveredResources(category string, count int) {
	if m == nil {
		return
	}
	m.discoveredResources.WithLabelValues(category).Set(float64(count))
}

// RecordAggregation records how long an aggregation took. mode is "single" or "all".
func (m *Metrics) RecordAggregation(mode string, duration time.Duration) {
	if m == nil {
		return
	}
	m.aggregationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// SetDegraded flips the degraded-mode gauge
func (m *Metrics) SetDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.degraded.Set(1)
		return
	}
	m.degraded.Set(0)
}

// RecordHTTPRequest records a served HTTP request
func (m *Metrics) RecordHTTPRequest(route, method, code string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}
