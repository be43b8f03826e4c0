// Package snapshot encodes the engine's live state as a flat binary record
// stream and moves it to and from disk.
//
// # Format
//
// All integers are little-endian:
//
//	[u32 magic = 0x43534442 "CSDB"]
//	[u32 version = 1]
//	[i64 record_count]
//	record_count times:
//	    [u32 key_len][key bytes]
//	    [u32 value_len][value bytes]
//	    [i64 ttl_ms]   -1 = no expiry, else remaining ms at save time
//
// Strings longer than [MaxStringLen] are rejected on load as corrupt.
//
// # Errors
//
// Failures opening, reading or writing files wrap [ErrIO]. Anything wrong
// with the bytes themselves (bad magic, unknown version, negative count,
// oversized string, truncated stream) wraps [ErrCorrupt]; the more specific
// sentinels such as [ErrTruncated] wrap it as well:
//
//	records, err := snapshot.Load("snapshot.bin")
//	switch {
//	case errors.Is(err, snapshot.ErrCorrupt):
//	    // file is damaged or not a snapshot
//	case errors.Is(err, snapshot.ErrIO):
//	    // file could not be read
//	}
//
// A failed Decode or Load never returns partial records.
//
// Save truncates the target and writes in place; it is not crash-atomic.
package snapshot
