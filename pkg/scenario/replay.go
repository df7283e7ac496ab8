package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/lrukit/pkg/cache"
)

// Result records the outcome of one step and the recency order after it.
type Result struct {
	Step

	// Hit reports whether get, peek or remove found the key.
	Hit bool
	// Got is the value returned by get, peek or remove.
	Got string
	// Evicted reports whether put evicted EvictedKey.
	Evicted    bool
	EvictedKey string
	// Order lists keys from most to least recently used.
	Order []string
	// State renders the cache from least to most recently used, {k=v, ...}.
	State string
	Size  int
}

// Trace is the full record of a replay.
type Trace struct {
	Script  *Script
	Results []Result
	Stats   cache.Stats
}

// Evictions returns the evicted keys in the order they left the cache.
func (t *Trace) Evictions() []string {
	var keys []string
	for _, r := range t.Results {
		if r.Evicted {
			keys = append(keys, r.EvictedKey)
		}
	}
	return keys
}

// Run replays s against a new cache built with opts. It stops between steps
// when ctx is done and returns the results gathered so far with the error.
func Run(ctx context.Context, s *Script, opts ...cache.Option[string, string]) (*Trace, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil script", ErrInvalidScript)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	c, err := cache.New(s.Capacity, opts...)
	if err != nil {
		return nil, err
	}

	trace := &Trace{Script: s, Results: make([]Result, 0, len(s.Steps))}
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			trace.Stats = c.Stats()
			return trace, errors.Join(ErrReplayCancelled, fmt.Errorf("before step %d: %w", i, err))
		}
		trace.Results = append(trace.Results, apply(c, st))
	}

	trace.Stats = c.Stats()
	return trace, nil
}

func apply(c *cache.LRU[string, string], st Step) Result {
	r := Result{Step: st}

	switch st.Op {
	case OpPut:
		r.EvictedKey, r.Evicted = c.Put(st.Key, st.Value)
	case OpGet:
		r.Got, r.Hit = c.Get(st.Key)
	case OpPeek:
		r.Got, r.Hit = c.Peek(st.Key)
	case OpRemove:
		r.Got, r.Hit = c.Remove(st.Key)
	}

	r.Order = c.Keys()
	r.State = c.String()
	r.Size = c.Len()
	return r
}
