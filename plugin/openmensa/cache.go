package openmensa

import (
	"sync"
	"time"
)

// defaultCacheSize bounds each canteen's cache. A week of distinct days
// covers everything the date window admits.
const defaultCacheSize = 7

// timedCache is a small bounded cache with per-entry expiry and
// least-recently-used eviction. Values are opaque to it. Every operation
// holds the cache's one mutex for its whole body, so concurrent callers
// never observe a partial update or a cache above capacity.
type timedCache[K comparable, V any] struct {
	mu      sync.Mutex
	size    int
	entries map[K]*cacheEntry[V]
}

// cacheEntry wraps a stored value with its expiry and eviction bookkeeping.
type cacheEntry[V any] struct {
	value    V
	expires  time.Time // absolute; the entry counts as absent once reached
	lastUsed time.Time // bumped on every hit; oldest goes first on eviction
}

func newTimedCache[K comparable, V any](size int) *timedCache[K, V] {
	if size <= 0 {
		size = defaultCacheSize
	}
	return &timedCache[K, V]{
		size:    size,
		entries: make(map[K]*cacheEntry[V], size),
	}
}

// get returns the live value stored under key. An entry whose expiry has
// been reached counts as a miss and is purged on the way out.
func (c *timedCache[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if expired(e, time.Now()) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	e.lastUsed = time.Now()
	return e.value, true
}

// put stores value under key until expires, replacing any previous entry.
// At capacity it first drops everything already expired and only then evicts
// least-recently-used survivors, so stale data goes before fresh data.
func (c *timedCache[K, V]) put(key K, value V, expires time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.size {
		c.removeExpired()
	}
	// The sweep above should always free a slot when one is needed, the
	// loop guards the capacity bound regardless.
	for len(c.entries) >= c.size {
		c.removeOldest()
	}

	c.entries[key] = &cacheEntry[V]{
		value:    value,
		expires:  expires,
		lastUsed: time.Now(),
	}
}

// flush unconditionally empties the cache.
func (c *timedCache[K, V]) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*cacheEntry[V], c.size)
}

// len returns the number of entries currently held, expired ones included.
func (c *timedCache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// removeExpired drops all entries whose expiry has been reached.
// Callers must hold mu.
func (c *timedCache[K, V]) removeExpired() {
	now := time.Now()
	for key, e := range c.entries {
		if expired(e, now) {
			delete(c.entries, key)
		}
	}
}

// removeOldest drops the entry with the oldest last access. A linear pass is
// plenty at the sizes this cache runs at. Callers must hold mu.
func (c *timedCache[K, V]) removeOldest() {
	var (
		oldestKey K
		oldestAt  time.Time
		found     bool
	)
	for key, e := range c.entries {
		if !found || e.lastUsed.Before(oldestAt) {
			oldestKey, oldestAt, found = key, e.lastUsed, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

func expired[V any](e *cacheEntry[V], now time.Time) bool {
	return !now.Before(e.expires)
}
