package cache

// Sentinel slots bounding the recency order. Real entries start at firstSlot.
const (
	headSlot handle = iota
	tailSlot
	firstSlot
)

// node is one slot of the arena. prev and next are handles, not pointers,
// so the arena owns every entry and relinking never allocates.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  handle
	next  handle
}

// recencyOrder keeps entries from most recently used (after head) to least
// recently used (before tail). It is not safe for concurrent use.
type recencyOrder[K comparable, V any] struct {
	nodes []node[K, V]
	free  []handle
	size  int
}

// newRecencyOrder returns an empty order. The arena grows on demand, so an
// empty order costs the same whatever the cache capacity.
func newRecencyOrder[K comparable, V any]() recencyOrder[K, V] {
	o := recencyOrder[K, V]{nodes: make([]node[K, V], firstSlot)}
	o.reset()
	return o
}

func (o *recencyOrder[K, V]) len() int {
	return o.size
}

func (o *recencyOrder[K, V]) at(h handle) *node[K, V] {
	return &o.nodes[h]
}

// pushFront stores a new entry right after the head sentinel.
func (o *recencyOrder[K, V]) pushFront(key K, value V) handle {
	var h handle
	if n := len(o.free); n > 0 {
		h = o.free[n-1]
		o.free = o.free[:n-1]
		o.nodes[h] = node[K, V]{key: key, value: value}
	} else {
		h = handle(len(o.nodes))
		o.nodes = append(o.nodes, node[K, V]{key: key, value: value})
	}
	o.linkFront(h)
	o.size++
	return h
}

// moveToFront relinks h right after the head sentinel.
func (o *recencyOrder[K, V]) moveToFront(h handle) {
	if o.nodes[headSlot].next == h {
		return
	}
	o.unlink(h)
	o.linkFront(h)
}

// back returns the least recently used entry without detaching it.
func (o *recencyOrder[K, V]) back() (handle, bool) {
	h := o.nodes[tailSlot].prev
	return h, h != headSlot
}

// removeBack detaches the least recently used entry. The order must not be
// empty.
func (o *recencyOrder[K, V]) removeBack() node[K, V] {
	h, ok := o.back()
	if !ok {
		panic("cache: removeBack on empty recency order")
	}
	return o.remove(h)
}

// remove detaches h, recycles its slot and returns the detached entry.
func (o *recencyOrder[K, V]) remove(h handle) node[K, V] {
	o.unlink(h)
	n := o.nodes[h]
	o.nodes[h] = node[K, V]{}
	o.free = append(o.free, h)
	o.size--
	return n
}

// walk visits entries front to back until fn returns false.
func (o *recencyOrder[K, V]) walk(fn func(n *node[K, V]) bool) {
	for h := o.nodes[headSlot].next; h != tailSlot; h = o.nodes[h].next {
		if !fn(&o.nodes[h]) {
			return
		}
	}
}

func (o *recencyOrder[K, V]) keys() []K {
	keys := make([]K, 0, o.size)
	o.walk(func(n *node[K, V]) bool {
		keys = append(keys, n.key)
		return true
	})
	return keys
}

// reset drops every entry but keeps the arena's backing storage.
func (o *recencyOrder[K, V]) reset() {
	clear(o.nodes)
	o.nodes = o.nodes[:firstSlot]
	o.free = o.free[:0]
	o.size = 0
	o.nodes[headSlot].next = tailSlot
	o.nodes[tailSlot].prev = headSlot
}

func (o *recencyOrder[K, V]) linkFront(h handle) {
	first := o.nodes[headSlot].next
	o.nodes[h].prev = headSlot
	o.nodes[h].next = first
	o.nodes[first].prev = h
	o.nodes[headSlot].next = h
}

func (o *recencyOrder[K, V]) unlink(h handle) {
	n := &o.nodes[h]
	o.nodes[n.prev].next = n.next
	o.nodes[n.next].prev = n.prev
	n.prev, n.next = headSlot, headSlot
}
