// Package prometheus provides Prometheus implementations of the engine and
// expiry metrics interfaces.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/chronostore-go/core/metrics"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Default histogram buckets for latency metrics (in seconds).
var defaultBuckets = []float64{
	.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5,
}

// AllMetrics holds the Prometheus implementations for the engine and its
// expiry sweep, registered against the same registerer.
type AllMetrics struct {
	Engine *engineMetrics
	Expiry *expiryMetrics
}

// NewAllMetrics creates and registers engine and expiry metrics.
func NewAllMetrics(reg prometheus.Registerer) *AllMetrics {
	return &AllMetrics{
		Engine: NewEngineMetrics(reg).(*engineMetrics),
		Expiry: NewExpiryMetrics(reg).(*expiryMetrics),
	}
}
