package engine

// Stats is a point-in-time view of the engine's counters. Each counter is
// read independently, so under concurrent load they may disagree by a few
// operations.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Sets        uint64
	Dels        uint64
	Expirations uint64

	Size     int
	Capacity int
}

// HitRatio returns hits / (hits + misses), or 0 before the first Get.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (e *Engine) Stats() Stats {
	return Stats{
		Hits:        e.hits.Load(),
		Misses:      e.misses.Load(),
		Evictions:   e.evictions.Load(),
		Sets:        e.sets.Load(),
		Dels:        e.dels.Load(),
		Expirations: e.expirations.Load(),
		Size:        e.Size(),
		Capacity:    e.Capacity(),
	}
}
