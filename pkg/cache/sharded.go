package cache

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/dmitrymomot/lrukit/pkg/logger"
)

// Hasher maps a key to a 64-bit hash used to pick its shard.
type Hasher[K comparable] func(key K) uint64

// StringHasher hashes string keys with xxhash.
func StringHasher(key string) uint64 {
	return xxhash.Sum64String(key)
}

// IntHasher hashes integer keys with xxhash over their little-endian bytes.
func IntHasher[T ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](key T) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	return xxhash.Sum64(buf[:])
}

// Sharded partitions keys across independent LRU caches, each with its own
// lock, to reduce contention.
//
// Recency is tracked per shard: an insertion evicts the least recently used
// entry of its own shard, which is not necessarily the globally oldest one.
type Sharded[K comparable, V any] struct {
	shards   []*LRU[K, V]
	hasher   Hasher[K]
	capacity int
}

// NewSharded creates a cache of the given total capacity split over shards.
// Each shard holds capacity/shards entries and the first capacity%shards
// shards hold one more, so the per-shard bounds sum to capacity.
func NewSharded[K comparable, V any](capacity, shards int, hasher Hasher[K], opts ...Option[K, V]) (*Sharded[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if shards <= 0 || shards > capacity {
		return nil, fmt.Errorf("%w: got %d shards for capacity %d", ErrInvalidShardCount, shards, capacity)
	}
	if hasher == nil {
		return nil, ErrNilHasher
	}

	o := buildOptions(opts)

	s := &Sharded[K, V]{
		shards:   make([]*LRU[K, V], shards),
		hasher:   hasher,
		capacity: capacity,
	}

	base, extra := capacity/shards, capacity%shards
	for i := range s.shards {
		size := base
		if i < extra {
			size++
		}

		shardOpts := []Option[K, V]{WithEvictCallback(o.onEvict)}
		if o.logger != nil {
			shardOpts = append(shardOpts, WithLogger[K, V](o.logger.With(logger.Shard(i))))
		}

		shard, err := New(size, shardOpts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = shard
	}

	return s, nil
}

func (s *Sharded[K, V]) shard(key K) *LRU[K, V] {
	return s.shards[s.ShardOf(key)]
}

// ShardOf returns the index of the shard that owns key.
func (s *Sharded[K, V]) ShardOf(key K) int {
	return int(s.hasher(key) % uint64(len(s.shards)))
}

// ShardCount returns the number of shards.
func (s *Sharded[K, V]) ShardCount() int {
	return len(s.shards)
}

func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shard(key).Get(key)
}

// Put stores value in the key's shard and returns the key evicted from that
// shard, if any.
func (s *Sharded[K, V]) Put(key K, value V) (K, bool) {
	return s.shard(key).Put(key, value)
}

func (s *Sharded[K, V]) Remove(key K) (V, bool) {
	return s.shard(key).Remove(key)
}

func (s *Sharded[K, V]) Peek(key K) (V, bool) {
	return s.shard(key).Peek(key)
}

func (s *Sharded[K, V]) Contains(key K) bool {
	return s.shard(key).Contains(key)
}

// Len returns the total number of entries across shards.
// Shards are read one at a time, so the sum is not an atomic snapshot.
func (s *Sharded[K, V]) Len() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Len()
	}
	return n
}

// Cap returns the total capacity across shards.
func (s *Sharded[K, V]) Cap() int {
	return s.capacity
}

// Keys returns every shard's keys, shard by shard, each in MRU to LRU order.
func (s *Sharded[K, V]) Keys() []K {
	var keys []K
	for _, shard := range s.shards {
		keys = append(keys, shard.Keys()...)
	}
	return keys
}

func (s *Sharded[K, V]) Clear() {
	for _, shard := range s.shards {
		shard.Clear()
	}
}

// Stats sums the counters of all shards.
func (s *Sharded[K, V]) Stats() Stats {
	var total Stats
	for _, shard := range s.shards {
		total = total.add(shard.Stats())
	}
	return total
}
