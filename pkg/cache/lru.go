package cache

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/lrukit/pkg/logger"
)

// Entry is a key/value pair returned by snapshots.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// LRU is a thread-safe, fixed-capacity cache that evicts the least recently
// used entry once an insertion exceeds capacity.
//
// Get and Put both count as a use. Because Get reorders entries, every
// operation takes the same exclusive lock.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	index    hashIndex[K]
	order    recencyOrder[K, V]
	stats    counters

	onEvict EvictCallback[K, V]
	logger  *slog.Logger
}

// New creates an LRU cache holding at most capacity entries.
// It returns ErrInvalidCapacity when capacity is not positive.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	o := buildOptions(opts)
	l := o.logger
	if l == nil {
		l = logger.Discard()
	}

	return &LRU[K, V]{
		capacity: capacity,
		index:    newHashIndex[K](),
		order:    newRecencyOrder[K, V](),
		onEvict:  o.onEvict,
		logger:   l,
	}, nil
}

// MustNew works like New but panics on invalid capacity.
func MustNew[K comparable, V any](capacity int, opts ...Option[K, V]) *LRU[K, V] {
	c, err := New(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the value stored under key and marks it as most recently used.
// A miss leaves the cache untouched.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.index.lookup(key)
	if !ok {
		c.stats.misses.Add(1)
		var zero V
		return zero, false
	}

	c.stats.hits.Add(1)
	c.order.moveToFront(h)
	return c.order.at(h).value, true
}

// Put stores value under key and marks it as most recently used.
// Updating a present key never evicts. Inserting a new key into a full cache
// evicts exactly one entry, the least recently used, whose key is returned.
func (c *LRU[K, V]) Put(key K, value V) (evictedKey K, evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.index.lookup(key); ok {
		c.order.at(h).value = value
		c.order.moveToFront(h)
		c.stats.updates.Add(1)
		return evictedKey, false
	}

	c.index.insert(key, c.order.pushFront(key, value))
	c.stats.insertions.Add(1)

	if c.order.len() <= c.capacity {
		return evictedKey, false
	}

	victim := c.order.removeBack()
	c.index.remove(victim.key)
	c.stats.evictions.Add(1)

	c.logger.Debug("evicted least recently used entry",
		logger.Component("cache"),
		logger.Key(victim.key),
		logger.Capacity(c.capacity),
	)
	c.notify(victim.key, victim.value, ReasonCapacity)

	return victim.key, true
}

// Remove deletes key and returns its value.
// It reports false when the key is not present.
func (c *LRU[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.index.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}

	n := c.order.remove(h)
	c.index.remove(key)
	c.stats.removals.Add(1)
	c.notify(n.key, n.value, ReasonRemoved)
	return n.value, true
}

// Peek returns the value stored under key without touching recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.index.lookup(key); ok {
		return c.order.at(h).value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is cached without touching recency.
func (c *LRU[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index.lookup(key)
	return ok
}

// Oldest returns the entry that the next capacity eviction would remove.
func (c *LRU[K, V]) Oldest() (key K, value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.order.back()
	if !ok {
		return key, value, false
	}
	n := c.order.at(h)
	return n.key, n.value, true
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.len()
}

// Cap returns the capacity fixed at construction.
func (c *LRU[K, V]) Cap() int {
	return c.capacity
}

// Keys returns keys from most to least recently used.
// It walks the whole cache; use it for debugging and tests only.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.keys()
}

// Entries returns key/value pairs from most to least recently used.
func (c *LRU[K, V]) Entries() []Entry[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]Entry[K, V], 0, c.order.len())
	c.order.walk(func(n *node[K, V]) bool {
		entries = append(entries, Entry[K, V]{Key: n.key, Value: n.value})
		return true
	})
	return entries
}

// Clear removes every entry. The evict callback, if any, sees each entry with
// ReasonCleared, and Stats counts them under Cleared.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.onEvict != nil {
		c.order.walk(func(n *node[K, V]) bool {
			c.onEvict(n.key, n.value, ReasonCleared)
			return true
		})
	}
	c.stats.cleared.Add(uint64(c.order.len()))
	c.order.reset()
	c.index.reset()
}

// Stats returns a snapshot of the cache counters.
func (c *LRU[K, V]) Stats() Stats {
	return c.stats.snapshot()
}

// String renders entries from least to most recently used, e.g. {1=One, 2=Two}.
func (c *LRU[K, V]) String() string {
	entries := c.Entries()

	var b strings.Builder
	b.WriteByte('{')
	for i := len(entries) - 1; i >= 0; i-- {
		if i != len(entries)-1 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v=%v", entries[i].Key, entries[i].Value)
	}
	b.WriteByte('}')
	return b.String()
}

// Must be called with lock held.
func (c *LRU[K, V]) notify(key K, value V, reason EvictReason) {
	if c.onEvict != nil {
		c.onEvict(key, value, reason)
	}
}

// verify checks that the index and the order agree. Must be called with lock held.
func (c *LRU[K, V]) verify() error {
	if c.index.len() != c.order.len() {
		return fmt.Errorf("index has %d keys, order has %d entries", c.index.len(), c.order.len())
	}
	if c.order.len() > c.capacity {
		return fmt.Errorf("size %d exceeds capacity %d", c.order.len(), c.capacity)
	}

	var err error
	seen := 0
	prev := headSlot
	for h := c.order.nodes[headSlot].next; h != tailSlot; h = c.order.nodes[h].next {
		n := c.order.nodes[h]
		if n.prev != prev {
			err = fmt.Errorf("broken back link at slot %d", h)
			break
		}
		if ih, ok := c.index.lookup(n.key); !ok || ih != h {
			err = fmt.Errorf("key %v at slot %d is not indexed to it", n.key, h)
			break
		}
		prev = h
		seen++
		if seen > c.order.len() {
			err = fmt.Errorf("cycle in recency order")
			break
		}
	}
	if err == nil && seen != c.order.len() {
		err = fmt.Errorf("walked %d entries, expected %d", seen, c.order.len())
	}
	return err
}
