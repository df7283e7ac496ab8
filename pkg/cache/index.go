package cache

import "fmt"

// handle addresses an entry slot inside the recency order arena.
type handle int

// hashIndex maps a key to the handle of its entry in the recency order.
// It holds lookup handles only; the order owns the entries.
type hashIndex[K comparable] struct {
	handles map[K]handle
}

func newHashIndex[K comparable]() hashIndex[K] {
	return hashIndex[K]{handles: make(map[K]handle)}
}

func (x *hashIndex[K]) lookup(key K) (handle, bool) {
	h, ok := x.handles[key]
	return h, ok
}

// insert panics if key is already indexed: callers remove before re-inserting.
func (x *hashIndex[K]) insert(key K, h handle) {
	if _, ok := x.handles[key]; ok {
		panic(fmt.Sprintf("cache: key %v already indexed", key))
	}
	x.handles[key] = h
}

func (x *hashIndex[K]) remove(key K) {
	delete(x.handles, key)
}

func (x *hashIndex[K]) len() int {
	return len(x.handles)
}

func (x *hashIndex[K]) reset() {
	clear(x.handles)
}
