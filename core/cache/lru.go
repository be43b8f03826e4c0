package cache

import "fmt"

// nilSlot terminates the recency list.
const nilSlot int32 = -1

type node struct {
	key   string
	value string
	prev  int32
	next  int32
}

// LRU is an arena-backed least-recently-used cache. head is the most
// recently used slot, tail the least.
type LRU struct {
	capacity int

	nodes []node
	free  []int32
	index map[string]int32

	head int32
	tail int32
}

// NewLRU creates an LRU holding at most capacity entries.
func NewLRU(capacity int) (*LRU, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	// don't reserve the whole arena up front for huge capacities
	hint := min(capacity, 1024)

	return &LRU{
		capacity: capacity,
		nodes:    make([]node, 0, hint),
		index:    make(map[string]int32, hint),
		head:     nilSlot,
		tail:     nilSlot,
	}, nil
}

func (l *LRU) Get(key string) (string, bool) {
	slot, ok := l.index[key]
	if !ok {
		return "", false
	}
	l.moveToFront(slot)
	return l.nodes[slot].value, true
}

func (l *LRU) Put(key, value string) (evicted string, ok bool) {
	if slot, found := l.index[key]; found {
		l.nodes[slot].value = value
		l.moveToFront(slot)
		return "", false
	}

	// Making room before linking the new entry evicts the same victim as
	// inserting first and trimming the tail, but lets the new entry reuse
	// the freed slot.
	if len(l.index) >= l.capacity {
		evicted = l.nodes[l.tail].key
		l.removeSlot(l.tail)
		ok = true
	}

	slot := l.alloc(key, value)
	l.index[key] = slot
	l.pushFront(slot)
	return evicted, ok
}

func (l *LRU) Remove(key string) bool {
	slot, ok := l.index[key]
	if !ok {
		return false
	}
	l.removeSlot(slot)
	return true
}

func (l *LRU) Contains(key string) bool {
	_, ok := l.index[key]
	return ok
}

func (l *LRU) Entries() []Entry {
	out := make([]Entry, 0, len(l.index))
	for s := l.head; s != nilSlot; s = l.nodes[s].next {
		out = append(out, Entry{Key: l.nodes[s].key, Value: l.nodes[s].value})
	}
	return out
}

func (l *LRU) Keys() []string {
	out := make([]string, 0, len(l.index))
	for s := l.head; s != nilSlot; s = l.nodes[s].next {
		out = append(out, l.nodes[s].key)
	}
	return out
}

func (l *LRU) Clear() {
	clear(l.nodes) // drop string references
	l.nodes = l.nodes[:0]
	l.free = l.free[:0]
	clear(l.index)
	l.head = nilSlot
	l.tail = nilSlot
}

func (l *LRU) Len() int      { return len(l.index) }
func (l *LRU) Capacity() int { return l.capacity }

// === arena ===

func (l *LRU) alloc(key, value string) int32 {
	n := node{key: key, value: value, prev: nilSlot, next: nilSlot}
	if last := len(l.free) - 1; last >= 0 {
		slot := l.free[last]
		l.free = l.free[:last]
		l.nodes[slot] = n
		return slot
	}
	l.nodes = append(l.nodes, n)
	return int32(len(l.nodes) - 1)
}

func (l *LRU) removeSlot(slot int32) {
	l.unlink(slot)
	delete(l.index, l.nodes[slot].key)
	l.nodes[slot] = node{prev: nilSlot, next: nilSlot}
	l.free = append(l.free, slot)
}

func (l *LRU) pushFront(slot int32) {
	n := &l.nodes[slot]
	n.prev = nilSlot
	n.next = l.head
	if l.head != nilSlot {
		l.nodes[l.head].prev = slot
	}
	l.head = slot
	if l.tail == nilSlot {
		l.tail = slot
	}
}

func (l *LRU) unlink(slot int32) {
	n := &l.nodes[slot]
	if n.prev != nilSlot {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nilSlot {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nilSlot
	n.next = nilSlot
}

func (l *LRU) moveToFront(slot int32) {
	if l.head == slot {
		return
	}
	l.unlink(slot)
	l.pushFront(slot)
}

var _ Cache = (*LRU)(nil)
