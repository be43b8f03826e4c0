// Package sf is a typed wrapper around golang.org/x/sync/singleflight.
//
// Concurrent calls to [Group.Do] with the same key run the function once;
// every caller receives that one result. Results are shared, so callers must
// treat them as read-only.
//
//	var loads sf.Group[[]snapshot.Record]
//	records, shared, err := loads.Do(path, func() ([]snapshot.Record, error) {
//	    return snapshot.Load(path)
//	})
package sf
