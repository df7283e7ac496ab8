package cache

// Verify exposes the internal consistency check to external tests.
func (c *LRU[K, V]) Verify() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verify()
}
