package product

import (
	"context"
	"sync"
)

// flight is one resolved-or-in-flight lookup.
type flight struct {
	done  chan struct{}
	value string
	err   error
}

// FlightCache memoizes string lookups by key and collapses concurrent
// lookups for the same key onto a single underlying call. The entry is
// inserted before the lookup function runs, so a second caller arriving
// while the first is still in flight waits on the same result instead of
// issuing a duplicate call. Failed lookups are cached like successful ones.
type FlightCache struct {
	mu      sync.Mutex
	entries map[string]*flight
}

// NewFlightCache creates an empty cache.
func NewFlightCache() *FlightCache {
	return &FlightCache{entries: make(map[string]*flight)}
}

// Do returns the cached value for key, or runs fn to produce it. Concurrent
// calls for the same key share one invocation of fn. The context only bounds
// the caller's wait; fn runs to completion and its result stays cached.
func (c *FlightCache) Do(ctx context.Context, key string, fn func() (string, error)) (string, error) {
	c.mu.Lock()
	if f, ok := c.entries[key]; ok {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.value, f.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f := &flight{done: make(chan struct{})}
	c.entries[key] = f
	c.mu.Unlock()

	f.value, f.err = fn()
	close(f.done)
	return f.value, f.err
}

// Len returns the number of cached entries, in flight or resolved.
func (c *FlightCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset clears all entries. Intended for tests and account resets.
func (c *FlightCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*flight)
}
