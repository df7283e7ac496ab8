package cache

import "sync/atomic"

// Stats is a point-in-time snapshot of cache counters. Removals counts
// Remove calls that found their key; Cleared counts entries dropped by Clear.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Insertions uint64
	Updates    uint64
	Evictions  uint64
	Removals   uint64
	Cleared    uint64
}

// HitRatio returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (s Stats) add(o Stats) Stats {
	return Stats{
		Hits:       s.Hits + o.Hits,
		Misses:     s.Misses + o.Misses,
		Insertions: s.Insertions + o.Insertions,
		Updates:    s.Updates + o.Updates,
		Evictions:  s.Evictions + o.Evictions,
		Removals:   s.Removals + o.Removals,
		Cleared:    s.Cleared + o.Cleared,
	}
}

type counters struct {
	hits       atomic.Uint64
	misses     atomic.Uint64
	insertions atomic.Uint64
	updates    atomic.Uint64
	evictions  atomic.Uint64
	removals   atomic.Uint64
	cleared    atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Insertions: c.insertions.Load(),
		Updates:    c.updates.Load(),
		Evictions:  c.evictions.Load(),
		Removals:   c.removals.Load(),
		Cleared:    c.cleared.Load(),
	}
}
