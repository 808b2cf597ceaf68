// Package memo provides write-once, per-key memoization for derived values.
//
// A Cache is safe for concurrent use. Each key owns a cell guarded by a
// sync.Once, so concurrent first reads of the same key run the computation
// exactly once and every caller observes the same result. Errors are cached
// alongside values: a failed derivation is not retried.
package memo

import (
	"sync"
	"sync/atomic"
)

// Cache maps keys to lazily computed cells.
type Cache[K comparable] struct {
	mu    sync.Mutex
	cells map[K]*cell
}

type cell struct {
	once sync.Once
	done atomic.Bool
	val  any
	err  error
}

// New returns an empty Cache.
func New[K comparable]() *Cache[K] {
	return &Cache[K]{cells: make(map[K]*cell)}
}

func (c *Cache[K]) slot(k K) *cell {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cells == nil {
		c.cells = make(map[K]*cell)
	}
	cl, ok := c.cells[k]
	if !ok {
		cl = &cell{}
		c.cells[k] = cl
	}
	return cl
}

// Has reports whether the value for k has been computed.
func (c *Cache[K]) Has(k K) bool {
	c.mu.Lock()
	cl, ok := c.cells[k]
	c.mu.Unlock()
	return ok && cl.done.Load()
}

// Len returns the number of computed entries.
func (c *Cache[K]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, cl := range c.cells {
		if cl.done.Load() {
			n++
		}
	}
	return n
}

// Get returns the value stored under k, running fn to produce it on first use.
// fn must not read k from the same Cache; doing so deadlocks.
func Get[K comparable, T any](c *Cache[K], k K, fn func() (T, error)) (T, error) {
	cl := c.slot(k)
	cl.once.Do(func() {
		defer cl.done.Store(true)
		v, err := fn()
		cl.val, cl.err = v, err
	})
	if cl.err != nil {
		var zero T
		return zero, cl.err
	}
	v, _ := cl.val.(T)
	return v, nil
}

// Value is Get for derivations that cannot fail.
func Value[K comparable, T any](c *Cache[K], k K, fn func() T) T {
	v, _ := Get(c, k, func() (T, error) { return fn(), nil })
	return v
}
