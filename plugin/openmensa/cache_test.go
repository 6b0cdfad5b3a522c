package openmensa

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimedCache_BasicOperations(t *testing.T) {
	cache := newTimedCache[string, int](7)
	farOut := time.Now().Add(time.Hour)

	t.Run("PutAndGet", func(t *testing.T) {
		cache.put("monday", 1, farOut)

		val, ok := cache.get("monday")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, ok := cache.get("friday")
		assert.False(t, ok)
	})

	t.Run("PutReplaces", func(t *testing.T) {
		cache.put("tuesday", 1, farOut)
		cache.put("tuesday", 2, farOut)

		val, ok := cache.get("tuesday")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
	})

	t.Run("Flush", func(t *testing.T) {
		cache.put("wednesday", 3, farOut)
		cache.flush()

		assert.Equal(t, 0, cache.len())
		_, ok := cache.get("wednesday")
		assert.False(t, ok)
	})
}

func TestTimedCache_Expiry(t *testing.T) {
	cache := newTimedCache[string, int](7)

	cache.put("soon", 1, time.Now().Add(40*time.Millisecond))

	val, ok := cache.get("soon")
	require.True(t, ok)
	assert.Equal(t, 1, val)

	time.Sleep(50 * time.Millisecond)

	// Expired entries count as absent and are purged on the way out.
	_, ok = cache.get("soon")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.len())
}

func TestTimedCache_CapacityBound(t *testing.T) {
	cache := newTimedCache[int, int](7)
	farOut := time.Now().Add(time.Hour)

	for i := 0; i < 50; i++ {
		cache.put(i, i, farOut)
		assert.LessOrEqual(t, cache.len(), 7)
	}
}

func TestTimedCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newTimedCache[string, int](3)
	farOut := time.Now().Add(time.Hour)

	cache.put("a", 1, farOut)
	cache.put("b", 2, farOut)
	cache.put("c", 3, farOut)

	// Freshen "a" so "b" is the stalest.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("d", 4, farOut)

	_, ok = cache.get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	for _, key := range []string{"a", "c", "d"} {
		_, ok := cache.get(key)
		assert.True(t, ok, "entry %q should survive eviction", key)
	}
}

func TestTimedCache_PrefersExpiredOverFresh(t *testing.T) {
	cache := newTimedCache[string, int](3)

	// "old" has the most recent last-access but is expired; the other two
	// are stale by access time yet still fresh by expiry.
	cache.put("fresh1", 1, time.Now().Add(time.Hour))
	cache.put("fresh2", 2, time.Now().Add(time.Hour))
	cache.put("old", 3, time.Now().Add(30*time.Millisecond))

	time.Sleep(40 * time.Millisecond)

	cache.put("new", 4, time.Now().Add(time.Hour))

	_, ok := cache.get("old")
	assert.False(t, ok, "expired entry should go before fresh ones")
	for _, key := range []string{"fresh1", "fresh2", "new"} {
		_, ok := cache.get(key)
		assert.True(t, ok, "fresh entry %q should survive", key)
	}
}

func TestTimedCache_ConcurrentAccess(t *testing.T) {
	cache := newTimedCache[string, int](7)
	farOut := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("day-%d", i%10)
			cache.put(key, i, farOut)
			cache.get(key)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.len(), 7)
}
