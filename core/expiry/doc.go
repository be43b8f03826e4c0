// Package expiry tracks per-key deadlines and removes them from a background
// sweep goroutine.
//
// A [Scheduler] only knows about deadlines; it does not own the values. When
// a sweep finds keys whose deadline has passed it deletes them from its own
// map and then hands each key to the OnExpire callback so the owner can drop
// the value.
//
// # Locking
//
// The scheduler lock guards the deadline map only. A sweep collects expired
// keys under that lock and releases it before invoking any callback. Owners
// are expected to call into the scheduler while holding their own lock
// (owner lock, then scheduler lock), and the callback is expected to take the
// owner lock; notifying with the scheduler lock released keeps the two lock
// orders from ever forming a cycle.
//
// # Lifecycle
//
//	s := expiry.New(expiry.Options{
//	    Interval: 500 * time.Millisecond,
//	    OnExpire: func(key string) { store.Remove(key) },
//	})
//	s.Start()
//	defer s.Stop()
//
//	s.Set("session", 30*time.Second)
//	s.RemainingSeconds("session") // 29 or 30
//
// Stop interrupts the wait between sweeps and blocks until the sweep goroutine
// has exited. No callback runs after Stop returns.
package expiry
