// Command loadtest measures single-goroutine engine throughput across a
// fixed set of phases and reports each one via slog.
//
//	N=100000 CAPACITY=200000 go run ./cmd/loadtest
package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/chronostore-go/core/engine"
	"github.com/codewandler/chronostore-go/internal/env"
)

// === Config ===

var (
	N        = env.Int("N", 100_000)
	capacity = env.Int("CAPACITY", 200_000)
	workers  = env.Int("WORKERS", runtime.GOMAXPROCS(0))
	verbose  = env.Bool("VERBOSE", false)
)

func main() {
	N, workers = max(N, 1), max(workers, 1)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	log.Info("starting", slog.Int("ops_per_phase", N), slog.Int("capacity", capacity), slog.Int("workers", workers))

	// values are generated up front so the phases only measure the engine
	values := make([]string, N)
	for i := range values {
		values[i] = gonanoid.Must(16)
	}

	store := newEngine(log, capacity)
	defer store.Close()

	// === Phase 1: sequential SET ===
	phase(log, "sequential SET", N, func() {
		for i := 0; i < N; i++ {
			store.Set(key(i), values[i])
		}
	})

	// === Phase 2: sequential GET, all hits ===
	var hits int
	phase(log, "sequential GET", N, func() {
		for i := 0; i < N; i++ {
			if _, ok := store.Get(key(i)); ok {
				hits++
			}
		}
	})
	log.Info("  hits", slog.Int("hits", hits), slog.Int("of", N))

	// === Phase 3: random GET over twice the key space ===
	rng := rand.New(rand.NewPCG(42, 0))
	hits = 0
	phase(log, "random GET", N, func() {
		for i := 0; i < N; i++ {
			if _, ok := store.Get(key(rng.IntN(2 * N))); ok {
				hits++
			}
		}
	})
	log.Info("  hit rate", slog.String("pct", pct(hits, N)))

	// === Phase 4: mixed 70% GET / 30% SET ===
	rng = rand.New(rand.NewPCG(123, 0))
	phase(log, "mixed GET/SET 70/30", N, func() {
		for i := 0; i < N; i++ {
			k := key(rng.IntN(N))
			if rng.IntN(10) < 7 {
				store.Get(k)
			} else {
				store.Set(k, values[i])
			}
		}
	})

	// === Phase 5: SET with TTL ===
	ttlStore := newEngine(log, capacity)
	defer ttlStore.Close()
	phase(log, "SET with TTL 1h", N, func() {
		for i := 0; i < N; i++ {
			ttlStore.Set("ttl"+key(i), values[i], engine.WithTTL(time.Hour))
		}
	})

	// === Phase 6: eviction stress ===
	const evictCap, evictOps = 1_000, 10_000
	evictStore := newEngine(log, evictCap)
	defer evictStore.Close()
	phase(log, "SET evicting", evictOps, func() {
		for i := 0; i < evictOps; i++ {
			evictStore.Set(key(i), values[i%N])
		}
	})
	es := evictStore.Stats()
	log.Info("  evictions", slog.Uint64("evictions", es.Evictions), slog.Int("remaining", es.Size))

	// === Phase 7: parallel mixed ===
	per, total := split(N, workers)
	phase(log, fmt.Sprintf("parallel mixed x%d", workers), total, func() {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(seed uint64) {
				defer wg.Done()
				r := rand.New(rand.NewPCG(seed, 0))
				for i := 0; i < per; i++ {
					k := key(r.IntN(N))
					if r.IntN(10) < 7 {
						store.Get(k)
					} else {
						store.Set(k, values[i])
					}
				}
			}(uint64(w))
		}
		wg.Wait()
	})

	// === stats ===
	s := store.Stats()
	mu := getMemUsage()
	log.Info("done",
		slog.Uint64("sets", s.Sets),
		slog.Uint64("gets", s.Hits+s.Misses),
		slog.String("hit_ratio", pct(int(s.Hits), int(s.Hits+s.Misses))),
		slog.Uint64("alloc_mib", mu.Alloc/1024/1024),
		slog.Uint64("sys_mib", mu.Sys/1024/1024),
		slog.Uint64("num_gc", uint64(mu.NumGC)),
	)
}

func newEngine(log *slog.Logger, capacity int) *engine.Engine {
	e, err := engine.New(engine.Options{Capacity: capacity, Log: log})
	checkErr(err)
	return e
}

func phase(log *slog.Logger, name string, ops int, fn func()) {
	start := time.Now()
	fn()
	took := time.Since(start)
	log.Info(name,
		slog.Int("ops", ops),
		slog.Duration("took", took),
		slog.Int("ops_per_sec", int(float64(ops)/took.Seconds())),
		slog.Int64("ns_per_op", took.Nanoseconds()/int64(ops)),
	)
}

// split divides n ops over workers, giving every worker at least one op.
// total is the number of ops actually run.
func split(n, workers int) (per, total int) {
	per = max(n/workers, 1)
	return per, per * workers
}

func key(i int) string { return "key:" + strconv.Itoa(i) }

func pct(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}

// === stats helpers ===

type MemUsage struct {
	Alloc uint64 // bytes allocated and not yet freed (heap)
	Sys   uint64 // total bytes obtained from OS
	NumGC uint32 // gc cycles
}

func getMemUsage() MemUsage {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemUsage{Alloc: m.Alloc, Sys: m.Sys, NumGC: m.NumGC}
}

func checkErr(err error) {
	if err != nil {
		panic(err)
	}
}
