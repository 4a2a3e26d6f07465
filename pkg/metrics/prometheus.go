package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamCalls *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	overallScore  *prometheus.HistogramVec
}

var (
	shared     *Recorder
	sharedOnce sync.Once
)

// New returns the process-wide Prometheus recorder. Collectors register once.
func New() *Recorder {
	sharedOnce.Do(func() {
		shared = &Recorder{
			upstreamCalls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "memeiq_upstream_calls_total",
					Help: "Upstream provider calls by resource and result",
				},
				[]string{"provider", "resource", "result"},
			),
			errorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "memeiq_errors_total",
					Help: "Total number of errors encountered",
				},
				[]string{"type"},
			),
			latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "memeiq_operation_duration_seconds",
					Help:    "Duration of operations in seconds",
					Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
				},
				[]string{"operation"},
			),
			overallScore: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "memeiq_overall_score",
					Help:    "Distribution of overall token scores",
					Buckets: prometheus.LinearBuckets(10, 10, 9),
				},
				[]string{"recommendation"},
			),
		}
	})
	return shared
}

// RecordUpstreamCall counts one provider request; result is ok, empty or error.
func (r *Recorder) RecordUpstreamCall(provider, resource, result string) {
	r.upstreamCalls.WithLabelValues(provider, resource, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordScore observes a finished analysis.
func (r *Recorder) RecordScore(recommendation string, overall int) {
	r.overallScore.WithLabelValues(recommendation).Observe(float64(overall))
}
