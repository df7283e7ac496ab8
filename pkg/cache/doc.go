// Package cache provides a generic, thread-safe LRU (Least Recently Used)
// cache with O(1) lookup, insertion, reordering and eviction.
//
// The cache is built from two parts owned by the controller:
//
//   - a hash index mapping each key to a handle
//   - a recency order: a doubly linked list stored in a flat arena and
//     addressed by integer handles, bounded by head and tail sentinels
//
// The front of the recency order is the most recently used entry, the back
// is the next eviction victim. Both Get and Put count as a use.
//
// # Usage
//
//	c, err := cache.New[int, string](3)
//	if err != nil {
//		// capacity was not positive
//	}
//
//	c.Put(1, "One")
//	c.Put(2, "Two")
//	c.Put(3, "Three")
//
//	c.Get(1)                    // 1 becomes most recently used
//	key, evicted := c.Put(4, "Four") // key == 2, evicted == true
//
// Misses and evictions are ordinary return values. The only error is an
// invalid capacity at construction; New never clamps it.
//
// # Resource Cleanup
//
// Values that hold resources can be released when they leave the cache:
//
//	c, _ := cache.New[string, *os.File](16,
//		cache.WithEvictCallback(func(path string, f *os.File, _ cache.EvictReason) {
//			f.Close()
//		}),
//	)
//
// The callback runs under the cache lock and must not call the cache.
//
// # Thread Safety
//
// Every operation holds one exclusive mutex. A read/write lock would not help
// because Get moves the entry to the front. For high contention use Sharded,
// which spreads keys over independent caches at the cost of per-shard rather
// than global recency.
//
// # Read-Through Loading
//
// Loader wraps any Store and coalesces concurrent misses for the same key:
//
//	l, _ := cache.NewLoader[string, User](c, func(ctx context.Context, id string) (User, error) {
//		return repo.FindUser(ctx, id)
//	})
//	u, err := l.GetOrLoad(ctx, "42")
package cache
