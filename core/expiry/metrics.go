package expiry

import "github.com/codewandler/chronostore-go/core/metrics"

// Metrics defines the instrumentation hooks of the sweep. Implementations
// must be safe for concurrent use.
type Metrics interface {
	SweepDuration() metrics.Timer
	SweepExpired(n int)
	// Tracked reports the number of deadlines left after a sweep.
	Tracked(n int)
}

type nopMetrics struct{}

func (nopMetrics) SweepDuration() metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) SweepExpired(int)             {}
func (nopMetrics) Tracked(int)                  {}

// NopMetrics returns a no-op Metrics implementation.
func NopMetrics() Metrics { return nopMetrics{} }
