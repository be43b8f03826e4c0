package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func newLRU(t *testing.T, capacity int) *LRU {
	t.Helper()
	l, err := NewLRU(capacity)
	require.NoError(t, err)
	return l
}

func TestLRU_InvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		l, err := NewLRU(c)
		require.ErrorIs(t, err, ErrInvalidCapacity)
		require.Nil(t, l)
	}
}

func TestLRU_Basic(t *testing.T) {
	l := newLRU(t, 2)

	_, ok := l.Put("a", "1")
	require.False(t, ok)
	_, ok = l.Put("b", "2")
	require.False(t, ok)

	v, ok := l.Get("a")
	require.True(t, ok)
	require.Equal(t, "1", v)

	evicted, ok := l.Put("c", "3") // a was promoted, so b goes
	require.True(t, ok)
	require.Equal(t, "b", evicted)

	_, ok = l.Get("b")
	require.False(t, ok)

	v, ok = l.Get("c")
	require.True(t, ok)
	require.Equal(t, "3", v)
	require.Equal(t, 2, l.Len())
}

func TestLRU_EvictsExactlyLeastRecent(t *testing.T) {
	const capacity = 5
	l := newLRU(t, capacity)

	for i := 0; i < capacity; i++ {
		_, ok := l.Put(fmt.Sprintf("k%d", i), "v")
		require.False(t, ok)
	}

	evicted, ok := l.Put("overflow", "v")
	require.True(t, ok)
	require.Equal(t, "k0", evicted)
	require.False(t, l.Contains("k0"))
	require.Equal(t, capacity, l.Len())
}

func TestLRU_Update(t *testing.T) {
	l := newLRU(t, 2)

	l.Put("a", "1")
	l.Put("b", "2")

	evicted, ok := l.Put("a", "updated")
	require.False(t, ok, "updates never evict")
	require.Empty(t, evicted)

	v, ok := l.Get("a")
	require.True(t, ok)
	require.Equal(t, "updated", v)

	// the update promoted a, so b is now the tail
	evicted, ok = l.Put("c", "3")
	require.True(t, ok)
	require.Equal(t, "b", evicted)
}

func TestLRU_Promotion(t *testing.T) {
	l := newLRU(t, 2)

	l.Put("a", "1")
	l.Put("b", "2")
	evicted, _ := l.Put("c", "3")
	require.Equal(t, "a", evicted)

	l.Get("b")

	evicted, ok := l.Put("d", "4")
	require.True(t, ok)
	require.Equal(t, "c", evicted)
	require.Equal(t, []string{"d", "b"}, l.Keys())
}

func TestLRU_ContainsDoesNotPromote(t *testing.T) {
	l := newLRU(t, 2)

	l.Put("a", "1")
	l.Put("b", "2")

	require.True(t, l.Contains("a"))
	require.Equal(t, []Entry{{"b", "2"}, {"a", "1"}}, l.Entries())

	evicted, ok := l.Put("c", "3")
	require.True(t, ok)
	require.Equal(t, "a", evicted)
}

func TestLRU_Remove(t *testing.T) {
	l := newLRU(t, 3)

	l.Put("a", "1")
	l.Put("b", "2")
	l.Put("c", "3")

	require.True(t, l.Remove("b"))
	require.False(t, l.Remove("b"))
	require.False(t, l.Remove("nonexistent"))

	require.Equal(t, []string{"c", "a"}, l.Keys())
	require.Equal(t, 2, l.Len())

	// head and tail removal keep the list consistent
	require.True(t, l.Remove("c"))
	require.True(t, l.Remove("a"))
	require.Empty(t, l.Keys())

	l.Put("x", "1")
	require.Equal(t, []string{"x"}, l.Keys())
}

func TestLRU_Entries(t *testing.T) {
	l := newLRU(t, 3)

	l.Put("a", "1")
	l.Put("b", "2")
	l.Put("c", "3")
	l.Get("a")

	require.Equal(t, []Entry{
		{Key: "a", Value: "1"},
		{Key: "c", Value: "3"},
		{Key: "b", Value: "2"},
	}, l.Entries())

	// enumeration is non-destructive and does not reorder
	require.Equal(t, []string{"a", "c", "b"}, l.Keys())
}

func TestLRU_Clear(t *testing.T) {
	l := newLRU(t, 2)

	l.Put("a", "1")
	l.Put("b", "2")
	l.Clear()

	require.Equal(t, 0, l.Len())
	require.Empty(t, l.Entries())
	require.False(t, l.Contains("a"))

	l.Put("c", "3")
	l.Put("d", "4")
	evicted, ok := l.Put("e", "5")
	require.True(t, ok)
	require.Equal(t, "c", evicted)
}

func TestLRU_EmptyKey(t *testing.T) {
	l := newLRU(t, 1)

	l.Put("", "empty")
	v, ok := l.Get("")
	require.True(t, ok)
	require.Equal(t, "empty", v)

	evicted, ok := l.Put("x", "1")
	require.True(t, ok)
	require.Equal(t, "", evicted)
}

func TestLRU_ArenaStaysBounded(t *testing.T) {
	const capacity = 8
	l := newLRU(t, capacity)

	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("k%d", i)
		l.Put(key, "v")
		if i%3 == 0 {
			l.Remove(key)
		}
	}

	require.LessOrEqual(t, l.Len(), capacity)
	require.LessOrEqual(t, len(l.nodes), capacity)
	require.Len(t, l.index, l.Len())
	require.Len(t, l.Keys(), l.Len())
}

func BenchmarkLRU_Put(b *testing.B) {
	for _, size := range []int{10, 1000, 100_000} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			l, _ := NewLRU(size)
			keys := make([]string, 2*size)
			for i := range keys {
				keys[i] = fmt.Sprintf("key:%d", i)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				l.Put(keys[i%len(keys)], "v")
			}
		})
	}
}

func BenchmarkLRU_Get(b *testing.B) {
	for _, size := range []int{10, 1000, 100_000} {
		l, _ := NewLRU(size)
		keys := make([]string, size)
		for i := range keys {
			keys[i] = fmt.Sprintf("key:%d", i)
			l.Put(keys[i], "v")
		}
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = l.Get(keys[i%size])
			}
		})
	}
}
