// Package cache provides the capacity-bounded LRU container backing the engine.
//
// [LRU] keeps its recency list in an index-based arena: every entry lives in a
// slot of a single slice and links to its neighbours by slot index, while a map
// resolves keys to slots. Get, Put, Remove and Contains are O(1) and removed
// slots are recycled through a free list, so the arena never holds more than
// capacity slots.
//
//	lru, err := cache.NewLRU(2)
//	if err != nil {
//	    return err
//	}
//
//	lru.Put("a", "1")
//	lru.Put("b", "2")
//	lru.Get("a")                    // a is now most recently used
//	evicted, ok := lru.Put("c", "3") // evicted == "b", ok == true
//
// # Concurrency
//
// LRU is not safe for concurrent use. Even Get mutates the recency order, so
// every call must be serialized by the owner (the engine holds its write lock
// for Get, Put, Remove and Clear, and its read lock for Contains, Keys
// and Entries).
package cache
