package cache

import "errors"

var (
	ErrInvalidCapacity = errors.New("lru capacity must be > 0")
)

// Entry is a key/value pair as returned by [Cache.Entries].
type Entry struct {
	Key   string
	Value string
}

// Cache is a bounded key/value container with least-recently-used eviction.
type Cache interface {
	// Get returns the value for key and marks it most recently used.
	Get(key string) (string, bool)
	// Put inserts or updates key and marks it most recently used. If an insert
	// pushes the cache over capacity, the least recently used key is evicted
	// and returned with ok == true. Updates never evict.
	Put(key, value string) (evicted string, ok bool)
	// Remove deletes key and reports whether it was present.
	Remove(key string) bool
	// Contains reports whether key is present without touching recency.
	Contains(key string) bool
	// Entries returns all entries ordered most to least recently used.
	Entries() []Entry
	// Keys returns all keys ordered most to least recently used.
	Keys() []string
	// Clear removes every entry.
	Clear()
	// Len returns the number of entries.
	Len() int
	// Capacity returns the maximum number of entries.
	Capacity() int
}
