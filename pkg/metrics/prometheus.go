package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	refreshTotal    prometheus.Counter
	fetchErrors     *prometheus.CounterVec
	recordsFetched  *prometheus.CounterVec
	refreshDuration prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		refreshTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "oura_refresh_cycles_total",
				Help: "Total number of completed refresh cycles",
			},
		),
		fetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oura_fetch_errors_total",
				Help: "Total number of failed upstream fetches",
			},
			[]string{"metric_type"},
		),
		recordsFetched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oura_records_fetched_total",
				Help: "Total number of records fetched from the upstream API",
			},
			[]string{"metric_type"},
		),
		refreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "oura_refresh_duration_seconds",
				Help:    "Duration of a full refresh cycle in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordRefresh records a completed refresh cycle.
func (r *Recorder) RecordRefresh() {
	r.refreshTotal.Inc()
}

// RecordFetchError records a failed fetch for one metric type.
func (r *Recorder) RecordFetchError(metricType string) {
	r.fetchErrors.WithLabelValues(metricType).Inc()
}

// RecordRecordsFetched records how many records one fetch returned.
func (r *Recorder) RecordRecordsFetched(metricType string, n int) {
	r.recordsFetched.WithLabelValues(metricType).Add(float64(n))
}

// RecordRefreshDuration records refresh cycle latency in seconds.
func (r *Recorder) RecordRefreshDuration(seconds float64) {
	r.refreshDuration.Observe(seconds)
}
