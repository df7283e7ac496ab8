package cache

import (
	"log/slog"
)

// EvictReason describes why an entry left the cache.
type EvictReason uint8

const (
	// ReasonCapacity means the entry was the least recently used one when
	// an insertion pushed the cache over capacity.
	ReasonCapacity EvictReason = iota + 1
	// ReasonRemoved means the entry was deleted with Remove.
	ReasonRemoved
	// ReasonCleared means the entry was dropped by Clear.
	ReasonCleared
)

func (r EvictReason) String() string {
	switch r {
	case ReasonCapacity:
		return "capacity"
	case ReasonRemoved:
		return "removed"
	case ReasonCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// EvictCallback is called for every entry leaving the cache.
// It runs while the cache lock is held and must not call back into the cache.
type EvictCallback[K comparable, V any] func(key K, value V, reason EvictReason)

// Option configures an LRU or a Sharded cache.
type Option[K comparable, V any] func(*options[K, V])

type options[K comparable, V any] struct {
	onEvict EvictCallback[K, V]
	logger  *slog.Logger
}

// WithEvictCallback registers fn to release resources tied to evicted entries,
// e.g. closing a file handle cached under the key.
func WithEvictCallback[K comparable, V any](fn EvictCallback[K, V]) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvict = fn
	}
}

// WithLogger enables debug records for capacity evictions.
// Nil loggers are ignored.
func WithLogger[K comparable, V any](l *slog.Logger) Option[K, V] {
	return func(o *options[K, V]) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions[K comparable, V any](opts []Option[K, V]) options[K, V] {
	var o options[K, V]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
