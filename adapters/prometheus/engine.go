package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/chronostore-go/core/engine"
	"github.com/codewandler/chronostore-go/core/metrics"
)

// engineMetrics implements engine.Metrics using Prometheus.
type engineMetrics struct {
	hits        prometheus.Counter
	misses      prometheus.Counter
	evictions   prometheus.Counter
	sets        prometheus.Counter
	dels        prometheus.Counter
	expirations prometheus.Counter
	keys        prometheus.Gauge

	snapshotSaveDuration prometheus.Histogram
	snapshotLoadDuration prometheus.Histogram
	snapshotRecords      *prometheus.CounterVec
}

// NewEngineMetrics creates a new Prometheus implementation of engine.Metrics.
func NewEngineMetrics(reg prometheus.Registerer) engine.Metrics {
	m := &engineMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronostore_hits_total",
			Help: "Total number of GET hits",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronostore_misses_total",
			Help: "Total number of GET misses",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronostore_evictions_total",
			Help: "Total number of keys evicted by the LRU policy",
		}),
		sets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronostore_sets_total",
			Help: "Total number of SET operations",
		}),
		dels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronostore_dels_total",
			Help: "Total number of keys removed by DEL",
		}),
		expirations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronostore_expirations_total",
			Help: "Total number of keys removed by the expiry sweep",
		}),
		keys: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chronostore_keys",
			Help: "Number of keys currently stored",
		}),

		snapshotSaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chronostore_snapshot_save_duration_seconds",
			Help:    "Snapshot save latency in seconds",
			Buckets: defaultBuckets,
		}),
		snapshotLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chronostore_snapshot_load_duration_seconds",
			Help:    "Snapshot load latency in seconds",
			Buckets: defaultBuckets,
		}),
		snapshotRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chronostore_snapshot_records_total",
			Help: "Total number of records moved by snapshot operations",
		}, []string{"op"}),
	}

	reg.MustRegister(
		m.hits,
		m.misses,
		m.evictions,
		m.sets,
		m.dels,
		m.expirations,
		m.keys,
		m.snapshotSaveDuration,
		m.snapshotLoadDuration,
		m.snapshotRecords,
	)

	return m
}

func (m *engineMetrics) Hit()       { m.hits.Inc() }
func (m *engineMetrics) Miss()      { m.misses.Inc() }
func (m *engineMetrics) Evicted()   { m.evictions.Inc() }
func (m *engineMetrics) Set()       { m.sets.Inc() }
func (m *engineMetrics) Deleted()   { m.dels.Inc() }
func (m *engineMetrics) Expired()   { m.expirations.Inc() }
func (m *engineMetrics) Keys(n int) { m.keys.Set(float64(n)) }

func (m *engineMetrics) SnapshotSaveDuration() metrics.Timer {
	return newTimer(m.snapshotSaveDuration)
}

func (m *engineMetrics) SnapshotLoadDuration() metrics.Timer {
	return newTimer(m.snapshotLoadDuration)
}

func (m *engineMetrics) SnapshotRecords(op string, n int) {
	m.snapshotRecords.WithLabelValues(op).Add(float64(n))
}

var _ engine.Metrics = (*engineMetrics)(nil)
