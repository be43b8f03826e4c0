// Package kv defines the operation surface front ends drive the engine
// through. Front ends own all text parsing and formatting; they depend on
// Store rather than on the concrete engine.
package kv

import (
	"github.com/codewandler/chronostore-go/core/engine"
)

// TTL sentinels returned by Store.TTL.
const (
	TTLMissing  int64 = -2
	TTLNoExpiry int64 = -1
)

type Store interface {
	Set(key, value string, opts ...engine.SetOption) (evicted string, ok bool)
	Get(key string) (string, bool)
	Del(key string) bool
	TTL(key string) int64
	Keys() []string
	Flush()
	Save(path string) error
	Load(path string) error
	Stats() engine.Stats
	Size() int
	Close() error
}

var _ Store = (*engine.Engine)(nil)
