package engine

import "github.com/codewandler/chronostore-go/core/metrics"

// Metrics defines the instrumentation hooks of the engine. Implementations
// must be safe for concurrent use.
type Metrics interface {
	Hit()
	Miss()
	Evicted()
	Set()
	Deleted()
	Expired()
	// Keys reports the current number of stored keys.
	Keys(n int)

	SnapshotSaveDuration() metrics.Timer
	SnapshotLoadDuration() metrics.Timer
	// SnapshotRecords reports how many records op ("save" or "load") moved.
	SnapshotRecords(op string, n int)
}

type nopMetrics struct{}

func (nopMetrics) Hit()     {}
func (nopMetrics) Miss()    {}
func (nopMetrics) Evicted() {}
func (nopMetrics) Set()     {}
func (nopMetrics) Deleted() {}
func (nopMetrics) Expired() {}
func (nopMetrics) Keys(int) {}

func (nopMetrics) SnapshotSaveDuration() metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) SnapshotLoadDuration() metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) SnapshotRecords(string, int)         {}

// NopMetrics returns a no-op Metrics implementation.
func NopMetrics() Metrics { return nopMetrics{} }
