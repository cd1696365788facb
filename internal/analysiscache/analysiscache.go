// Package analysiscache memoizes per-file artifacts that multiple pipeline
// stages need, so each artifact is computed at most once per scan.
package analysiscache

import "sync"

// Cache is a lazily-populated, key-addressed memo table. It is safe for
// concurrent use by multiple pipeline stages.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
}

type entry[T any] struct {
	once  sync.Once
	value T
}

// New builds an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[string]*entry[T])}
}

// Get returns the cached value for key, invoking build exactly once per key
// on first access.
func (c *Cache[T]) Get(key string, build func() T) T {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() { e.value = build() })
	return e.value
}

// Len reports how many keys have been touched.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
