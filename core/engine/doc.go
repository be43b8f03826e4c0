// Package engine composes the LRU store, the expiry scheduler and the
// snapshot codec into a concurrent in-memory key-value engine.
//
// # Basic Usage
//
//	e, err := engine.New(engine.Options{
//	    Capacity:     10_000,
//	    SnapshotPath: "snapshot.bin",
//	})
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	e.Set("session", "abc", engine.WithTTLSeconds(30))
//	if v, ok := e.Get("session"); ok {
//	    // use v
//	}
//	e.TTL("session") // 30, 29, ... then -2 once swept
//
//	if err := e.Save(""); err != nil { // "" uses Options.SnapshotPath
//	    return err
//	}
//
// # TTL Sentinels
//
// [Engine.TTL] returns -2 for a missing key, -1 for a key without expiry and
// the whole seconds remaining otherwise. A plain Set without [WithTTL] always
// clears an existing TTL.
//
// # Expiry
//
// Expired keys are removed by a background sweep every SweepInterval. Until
// the next sweep an expired key is still visible to Get and Keys; TTL reports
// 0 for it. Flush clears the store but not the scheduler's deadlines: a later
// sweep for a flushed key finds nothing to remove and does not count it as
// an expiration.
//
// # Locking
//
// The engine holds a sync.RWMutex. Set, Del, Flush, Load, Get (which
// promotes recency) and the expiry callback take it exclusively; TTL, Keys,
// Size and the copy phase of Save share it. Snapshot file I/O always happens
// without the lock. Calls into the scheduler are made with the engine lock
// held, never the other way around.
package engine
