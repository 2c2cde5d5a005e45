package client

import "sync"

// ListCache holds the last loaded page of a resource list and reconciles
// mutations into it without refetching: creates prepend, updates replace
// in place (order preserved), deletes remove. Safe for concurrent use.
type ListCache[T any] struct {
	idOf func(T) string

	mu     sync.RWMutex
	items  []T
	total  int64
	loaded bool
}

// NewListCache creates a cache keyed by idOf.
func NewListCache[T any](idOf func(T) string) *ListCache[T] {
	return &ListCache[T]{idOf: idOf}
}

// Set replaces the cached list with a freshly fetched page.
func (c *ListCache[T]) Set(items []T, total int64) {
	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.total = total
	c.loaded = true
	c.mu.Unlock()
}

// Items returns a copy of the cached list.
func (c *ListCache[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// Total returns the server-side total count.
func (c *ListCache[T]) Total() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// Loaded reports whether the cache holds a fetched list.
func (c *ListCache[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Prepend puts a newly created item at the head of the list.
func (c *ListCache[T]) Prepend(item T) {
	c.mu.Lock()
	c.items = append([]T{item}, c.items...)
	c.total++
	c.mu.Unlock()
}

// ReplaceByID swaps the cached item with the same ID, keeping its
// position. An item not in the cache is ignored: it belongs to a page
// that is not loaded.
func (c *ListCache[T]) ReplaceByID(item T) {
	id := c.idOf(item)
	c.mu.Lock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			break
		}
	}
	c.mu.Unlock()
}

// RemoveByID drops the item with the given ID.
func (c *ListCache[T]) RemoveByID(id string) {
	c.mu.Lock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.total--
			break
		}
	}
	c.mu.Unlock()
}

// Clear empties the cache back to the unloaded state.
func (c *ListCache[T]) Clear() {
	c.mu.Lock()
	c.items = nil
	c.total = 0
	c.loaded = false
	c.mu.Unlock()
}
