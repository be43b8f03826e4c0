package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/chronostore-go/core/expiry"
	"github.com/codewandler/chronostore-go/core/metrics"
)

// expiryMetrics implements expiry.Metrics using Prometheus.
type expiryMetrics struct {
	sweepDuration prometheus.Histogram
	sweepExpired  prometheus.Counter
	sweeps        prometheus.Counter
	tracked       prometheus.Gauge
}

// NewExpiryMetrics creates a new Prometheus implementation of expiry.Metrics.
func NewExpiryMetrics(reg prometheus.Registerer) expiry.Metrics {
	m := &expiryMetrics{
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chronostore_expiry_sweep_duration_seconds",
			Help:    "Expiry sweep duration in seconds, including callbacks",
			Buckets: defaultBuckets,
		}),
		sweepExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronostore_expiry_expired_total",
			Help: "Total number of deadlines found expired by sweeps",
		}),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronostore_expiry_sweeps_total",
			Help: "Total number of completed sweeps",
		}),
		tracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chronostore_expiry_tracked_deadlines",
			Help: "Number of deadlines tracked after the last sweep",
		}),
	}

	reg.MustRegister(
		m.sweepDuration,
		m.sweepExpired,
		m.sweeps,
		m.tracked,
	)

	return m
}

func (m *expiryMetrics) SweepDuration() metrics.Timer {
	return newTimer(m.sweepDuration)
}

func (m *expiryMetrics) SweepExpired(n int) {
	m.sweeps.Inc()
	m.sweepExpired.Add(float64(n))
}

func (m *expiryMetrics) Tracked(n int) { m.tracked.Set(float64(n)) }

var _ expiry.Metrics = (*expiryMetrics)(nil)
