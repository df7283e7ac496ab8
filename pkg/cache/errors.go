package cache

import "errors"

var (
	// ErrInvalidCapacity is returned when a cache is constructed with a non-positive capacity.
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")

	// ErrInvalidShardCount is returned when the shard count is non-positive or exceeds capacity.
	ErrInvalidShardCount = errors.New("cache: shard count must be between 1 and capacity")

	// ErrNilHasher is returned when a sharded cache is constructed without a key hasher.
	ErrNilHasher = errors.New("cache: hasher is required")

	// ErrNilLoadFunc is returned when a loader is constructed without a load function.
	ErrNilLoadFunc = errors.New("cache: load function is required")

	// ErrNilStore is returned when a loader is constructed without a backing store.
	ErrNilStore = errors.New("cache: store is required")

	// ErrLoadFailed wraps errors returned by a load function.
	ErrLoadFailed = errors.New("cache: failed to load value")
)
