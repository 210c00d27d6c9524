package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the validity window for a stored outcome.
const DefaultTTL = 600 * time.Second

// outcome is the memoized result of one fetch. Errors are stored too,
// so a failed call is not reissued until the window elapses.
type outcome struct {
	value    interface{}
	err      error
	storedAt time.Time
}

// Cache memoizes fetch outcomes for a fixed wall-clock window, keyed by
// the call's full parameter identity. Entries expire lazily on lookup;
// there is no background sweeper and no per-entry invalidation.
// Concurrent callers of the same key share a single in-flight fetch.
type Cache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]outcome
	flight  singleflight.Group
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]outcome),
	}
}

// WithClock replaces the cache's time source. Call before first use;
// tests step the clock to cross the expiry window deterministically.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Do returns the stored outcome for key while it is fresh. Otherwise it
// runs fetch once, shares the result with concurrent callers of the
// same key, and stores value and error for the next window.
func (c *Cache) Do(key string, fetch func() (interface{}, error)) (interface{}, error) {
	if o, ok := c.lookup(key); ok {
		return o.value, o.err
	}

	value, err, _ := c.flight.Do(key, func() (interface{}, error) {
		// A concurrent flight may have stored the entry between the
		// caller's lookup and this one.
		if o, ok := c.lookup(key); ok {
			return o.value, o.err
		}
		value, err := fetch()
		c.store(key, value, err)
		return value, err
	})
	return value, err
}

// Len reports the number of stored entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL reports the configured validity window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Flush drops every stored entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]outcome)
}

func (c *Cache) lookup(key string) (outcome, bool) {
	c.mu.RLock()
	o, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return outcome{}, false
	}
	if c.now().Sub(o.storedAt) > c.ttl {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && current.storedAt.Equal(o.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return outcome{}, false
	}
	return o, true
}

func (c *Cache) store(key string, value interface{}, err error) {
	c.mu.Lock()
	c.entries[key] = outcome{value: value, err: err, storedAt: c.now()}
	c.mu.Unlock()
}
