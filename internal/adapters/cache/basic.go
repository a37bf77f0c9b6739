package cache

import "sync"

// basicCache is an unbounded in-memory cache. Entries never expire, so it
// only suits short-lived processes and tests.
type basicCache[T any] struct {
	mutex   sync.Mutex
	entries map[string]basicEntry[T]
}

type basicEntry[T any] struct {
	data  T
	valid bool
}

func NewBasicCache[T any]() *basicCache[T] {
	return &basicCache[T]{
		entries: make(map[string]basicEntry[T]),
	}
}

func (c *basicCache[T]) getOrClaim(key string) hitResult[T] {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	existing, ok := c.entries[key]
	if ok {
		return hitResult[T]{
			data:    existing.data,
			valid:   existing.valid,
			claimed: false,
		}
	}

	c.entries[key] = basicEntry[T]{valid: false}
	return hitResult[T]{claimed: true}
}

func (c *basicCache[T]) set(key string, data T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = basicEntry[T]{data: data, valid: true}
}

func (c *basicCache[T]) delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

func (c *basicCache[T]) wait() {
}
