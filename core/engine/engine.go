package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/chronostore-go/core/cache"
	"github.com/codewandler/chronostore-go/core/expiry"
	"github.com/codewandler/chronostore-go/core/sf"
	"github.com/codewandler/chronostore-go/core/snapshot"
)

type Engine struct {
	id           string
	log          *slog.Logger
	metrics      Metrics
	snapshotPath string

	mu     sync.RWMutex
	store  *cache.LRU
	ttl    *expiry.Scheduler
	closed bool

	// concurrent loads of the same file share one read
	loads sf.Group[[]snapshot.Record]

	hits        atomic.Uint64
	misses      atomic.Uint64
	evictions   atomic.Uint64
	sets        atomic.Uint64
	dels        atomic.Uint64
	expirations atomic.Uint64
}

// New creates an engine and starts its expiry sweep. The returned engine
// must be closed to stop the sweep.
func New(opts Options) (*Engine, error) {
	store, err := cache.NewLRU(opts.Capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if opts.ID == "" {
		opts.ID = fmt.Sprintf("engine-%s", gonanoid.Must(6))
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}

	e := &Engine{
		id:           opts.ID,
		log:          opts.Log.With(slog.String("engine", opts.ID)),
		metrics:      opts.Metrics,
		snapshotPath: opts.SnapshotPath,
		store:        store,
	}

	e.ttl = expiry.New(expiry.Options{
		Interval: opts.SweepInterval,
		OnExpire: e.expire,
		Log:      e.log,
		Metrics:  opts.ExpiryMetrics,
	})
	e.ttl.Start()

	e.log.Info(
		"engine started",
		slog.Int("capacity", opts.Capacity),
		slog.String("snapshot_path", opts.SnapshotPath),
	)

	return e, nil
}

func (e *Engine) ID() string { return e.id }

// Close stops the expiry sweep and waits for it to exit. Afterwards Set, Del
// and Flush are no-ops and Load fails with ErrClosed; reads and Save keep
// working on the final state. Close is safe to call multiple times.
func (e *Engine) Close() error {
	e.mu.Lock()
	wasClosed := e.closed
	e.closed = true
	e.mu.Unlock()

	// Must run without e.mu: an in-flight sweep callback may be waiting for it.
	e.ttl.Stop()

	if !wasClosed {
		e.log.Info("engine stopped")
	}
	return nil
}

// Set stores value under key. With a positive TTL the key expires after it;
// otherwise any existing TTL on key is cleared. If the insert pushed the
// engine over capacity, the evicted key is returned with ok == true.
func (e *Engine) Set(key, value string, opts ...SetOption) (evicted string, ok bool) {
	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return "", false
	}

	evicted, ok = e.store.Put(key, value)
	if ok {
		e.ttl.Remove(evicted)
		e.evictions.Add(1)
		e.metrics.Evicted()
		e.log.Debug("evicted key", slog.String("key", evicted))
	}

	if o.ttl > 0 {
		e.ttl.Set(key, o.ttl)
	} else {
		e.ttl.Remove(key)
	}

	e.sets.Add(1)
	e.metrics.Set()
	e.metrics.Keys(e.store.Len())
	return evicted, ok
}

// Get returns the value stored under key and marks it most recently used.
func (e *Engine) Get(key string) (string, bool) {
	// exclusive: a hit reorders the recency list
	e.mu.Lock()
	v, ok := e.store.Get(key)
	e.mu.Unlock()

	if ok {
		e.hits.Add(1)
		e.metrics.Hit()
	} else {
		e.misses.Add(1)
		e.metrics.Miss()
	}
	return v, ok
}

// Del removes key and its TTL. It reports whether key existed.
func (e *Engine) Del(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	if !e.store.Remove(key) {
		return false
	}
	e.ttl.Remove(key)
	e.dels.Add(1)
	e.metrics.Deleted()
	e.metrics.Keys(e.store.Len())
	return true
}

// TTL returns the whole seconds until key expires, -1 if key has no TTL or
// -2 if key does not exist.
func (e *Engine) TTL(key string) int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.store.Contains(key) {
		return -2
	}
	return e.ttl.RemainingSeconds(key)
}

// Keys lists all stored keys, most recently used first. Keys past their
// deadline stay listed until the next sweep removes them.
func (e *Engine) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Keys()
}

// Flush removes all keys. Pending deadlines are left to the sweep, which
// skips keys that are no longer stored.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	n := e.store.Len()
	e.store.Clear()
	e.metrics.Keys(0)
	e.log.Debug("flushed", slog.Int("keys", n))
}

func (e *Engine) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Len()
}

func (e *Engine) Capacity() int { return e.store.Capacity() }

// expire is the scheduler's callback. It only counts an expiration when the
// key was still stored; it may have been deleted, evicted or flushed since
// its deadline was registered.
func (e *Engine) expire(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if e.store.Remove(key) {
		e.expirations.Add(1)
		e.metrics.Expired()
		e.metrics.Keys(e.store.Len())
	}
}

func (e *Engine) resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if e.snapshotPath == "" {
		return "", ErrNoSnapshotPath
	}
	return e.snapshotPath, nil
}

// Save writes all keys with their remaining TTL to path, or to
// Options.SnapshotPath if path is empty. Keys whose TTL has run out but
// which have not been swept yet are skipped. The file is written after the
// engine lock has been released.
func (e *Engine) Save(path string) error {
	path, err := e.resolvePath(path)
	if err != nil {
		return err
	}
	defer e.metrics.SnapshotSaveDuration().ObserveDuration()

	e.mu.RLock()
	entries := e.store.Entries()
	records := make([]snapshot.Record, 0, len(entries))
	for _, entry := range entries {
		remaining := e.ttl.RemainingMillis(entry.Key) // -1 == snapshot.NoExpiry
		if remaining == 0 {
			continue
		}
		records = append(records, snapshot.Record{
			Key:       entry.Key,
			Value:     entry.Value,
			TTLMillis: remaining,
		})
	}
	e.mu.RUnlock()

	if err := snapshot.Save(path, records); err != nil {
		e.log.Warn("snapshot save failed", slog.String("path", path), slog.Any("error", err))
		return err
	}

	// a load already in flight for path read the previous file
	e.loads.Forget(path)

	e.metrics.SnapshotRecords("save", len(records))
	e.log.Debug("snapshot saved", slog.String("path", path), slog.Int("records", len(records)))
	return nil
}

// Load replaces the engine's entire state with the snapshot at path, or at
// Options.SnapshotPath if path is empty. The file is read and decoded
// before the engine lock is taken; if that fails the current state is left
// untouched. TTLs restart from the time of the load. Records are inserted
// so that the saved recency order is preserved.
func (e *Engine) Load(path string) error {
	path, err := e.resolvePath(path)
	if err != nil {
		return err
	}

	e.mu.RLock()
	closed := e.closed
	e.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	defer e.metrics.SnapshotLoadDuration().ObserveDuration()

	// shared between callers of the same flight; read-only from here on
	records, shared, err := e.loads.Do(path, func() ([]snapshot.Record, error) {
		return snapshot.Load(path)
	})
	if err != nil {
		e.log.Warn("snapshot load failed", slog.String("path", path), slog.Any("error", err))
		return err
	}

	now := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	e.store.Clear()
	e.ttl.Clear()

	loaded := 0
	// records are stored most recent first
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.TTLMillis == 0 {
			continue
		}
		if evicted, ok := e.store.Put(r.Key, r.Value); ok {
			e.ttl.Remove(evicted)
			e.evictions.Add(1)
			e.metrics.Evicted()
		}
		if r.TTLMillis > 0 {
			e.ttl.SetDeadline(r.Key, now.Add(scaleDuration(r.TTLMillis, time.Millisecond)))
		} else {
			e.ttl.Remove(r.Key)
		}
		loaded++
	}

	e.metrics.Keys(e.store.Len())
	e.metrics.SnapshotRecords("load", loaded)
	e.log.Debug(
		"snapshot loaded",
		slog.String("path", path),
		slog.Int("records", loaded),
		slog.Int("keys", e.store.Len()),
		slog.Bool("shared", shared),
	)
	return nil
}
