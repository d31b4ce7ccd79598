// Package metrics defines the prometheus collectors for the ranking
// service. Collectors are created unregistered; the server wires them
// into its private registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricSearches        = "semrank_searches_total"
	MetricSearchErrors    = "semrank_search_errors_total"
	MetricTagMatches      = "semrank_tag_match_requests_total"
	MetricFeedbackBatches = "semrank_feedback_batches_total"
	MetricTrainingRuns    = "semrank_training_runs_total"
	MetricSearchDuration  = "semrank_search_duration_seconds"
	MetricCacheHits       = "semrank_cache_hits"
	MetricCacheMisses     = "semrank_cache_misses"
)

// CacheStatser reports cumulative hit and miss counts. Both vector
// caches satisfy it.
type CacheStatser interface {
	Stats() (hits, misses uint64)
}

// Metrics contains the service's prometheus collectors.
// All operations are thread-safe.
type Metrics struct {
	searches        prometheus.Counter
	searchErrors    prometheus.Counter
	tagMatches      prometheus.Counter
	feedbackBatches prometheus.Counter
	trainingRuns    prometheus.Counter
	searchDuration  prometheus.Histogram

	cacheGauges []prometheus.Collector
}

// NewMetrics creates a Metrics instance with all collectors
// initialized. The metrics are not registered; call Register to
// register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSearches,
			Help: "Total number of search requests served",
		}),
		searchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSearchErrors,
			Help: "Total number of search requests rejected or failed",
		}),
		tagMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricTagMatches,
			Help: "Total number of tag match requests served",
		}),
		feedbackBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricFeedbackBatches,
			Help: "Total number of feedback batches accepted",
		}),
		trainingRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricTrainingRuns,
			Help: "Total number of successful classifier training runs",
		}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricSearchDuration,
			Help:    "Histogram of search request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveCache exposes a cache's hit and miss counts as gauges labeled
// with the cache name. Call before Register.
func (m *Metrics) ObserveCache(name string, cache CacheStatser) {
	labels := prometheus.Labels{"cache": name}
	m.cacheGauges = append(m.cacheGauges,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        MetricCacheHits,
			Help:        "Cumulative cache hits",
			ConstLabels: labels,
		}, func() float64 {
			hits, _ := cache.Stats()
			return float64(hits)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        MetricCacheMisses,
			Help:        "Cumulative cache misses",
			ConstLabels: labels,
		}, func() float64 {
			_, misses := cache.Stats()
			return float64(misses)
		}),
	)
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.searches,
		m.searchErrors,
		m.tagMatches,
		m.feedbackBatches,
		m.trainingRuns,
		m.searchDuration,
	}
	collectors = append(collectors, m.cacheGauges...)

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncSearches increments the search counter.
func (m *Metrics) IncSearches() {
	m.searches.Inc()
}

// IncSearchErrors increments the search error counter.
func (m *Metrics) IncSearchErrors() {
	m.searchErrors.Inc()
}

// IncTagMatches increments the tag match counter.
func (m *Metrics) IncTagMatches() {
	m.tagMatches.Inc()
}

// IncFeedbackBatches increments the accepted feedback batch counter.
func (m *Metrics) IncFeedbackBatches() {
	m.feedbackBatches.Inc()
}

// IncTrainingRuns increments the successful training run counter.
func (m *Metrics) IncTrainingRuns() {
	m.trainingRuns.Inc()
}

// ObserveSearchDuration records one search duration in seconds.
func (m *Metrics) ObserveSearchDuration(seconds float64) {
	m.searchDuration.Observe(seconds)
}
