package engine

import (
	"log/slog"
	"math"
	"time"

	"github.com/codewandler/chronostore-go/core/expiry"
)

type Options struct {
	// ID names the engine in logs. Defaults to "engine-<random>".
	ID string
	// Capacity is the maximum number of keys. Required, must be > 0.
	Capacity int
	// SnapshotPath is used by Save and Load when they are given an empty path.
	SnapshotPath string
	// SweepInterval between expiry sweeps. Defaults to expiry.DefaultInterval.
	SweepInterval time.Duration

	Log           *slog.Logger
	Metrics       Metrics
	ExpiryMetrics expiry.Metrics
}

type setOptions struct {
	ttl time.Duration
}

type SetOption func(*setOptions)

// WithTTL expires the key after ttl. A ttl <= 0 is the same as no TTL.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) {
		o.ttl = ttl
	}
}

// WithTTLSeconds is WithTTL in whole seconds.
func WithTTLSeconds(seconds int64) SetOption {
	return WithTTL(scaleDuration(seconds, time.Second))
}

// scaleDuration returns n*unit, saturating at the Duration range.
func scaleDuration(n int64, unit time.Duration) time.Duration {
	switch {
	case n > math.MaxInt64/int64(unit):
		return time.Duration(math.MaxInt64)
	case n < math.MinInt64/int64(unit):
		return time.Duration(math.MinInt64)
	}
	return time.Duration(n) * unit
}
