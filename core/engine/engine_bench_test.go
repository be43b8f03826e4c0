package engine

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func benchEngine(b *testing.B, capacity, prefill int) (*Engine, []string) {
	b.Helper()
	e, err := New(Options{Capacity: capacity})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = e.Close() })

	keys := make([]string, prefill)
	for i := range keys {
		keys[i] = fmt.Sprintf("key:%d", i)
		e.Set(keys[i], "value")
	}
	return e, keys
}

func BenchmarkEngine_Set(b *testing.B) {
	for _, capacity := range []int{1_000, 200_000} {
		b.Run(fmt.Sprintf("capacity=%d", capacity), func(b *testing.B) {
			e, _ := benchEngine(b, capacity, 0)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.Set("key:"+fmt.Sprint(i), "value")
			}
		})
	}
}

func BenchmarkEngine_Get(b *testing.B) {
	e, keys := benchEngine(b, 100_000, 100_000)

	b.Run("hits", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			e.Get(keys[i%len(keys)])
		}
	})

	b.Run("random", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			// about half the keys miss
			e.Get(fmt.Sprintf("key:%d", rand.IntN(2*len(keys))))
		}
	})
}

func BenchmarkEngine_Mixed(b *testing.B) {
	e, keys := benchEngine(b, 100_000, 100_000)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := keys[rand.IntN(len(keys))]
			if i%10 < 7 {
				e.Get(key)
			} else {
				e.Set(key, "updated")
			}
			i++
		}
	})
}
