package attendance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey_StableAndInputSensitive(t *testing.T) {
	a, err := CacheKey(januaryScenario(false))
	require.NoError(t, err)
	b, err := CacheKey(januaryScenario(false))
	require.NoError(t, err)
	c, err := CacheKey(januaryScenario(true))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)

	swapped := januaryScenario(false)
	swapped.WeeklyOff = time.Saturday
	d, err := CacheKey(swapped)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestGridCache_ExpiryAndSweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	cache := NewGridCache(time.Minute, 10)
	cache.now = func() time.Time { return now }

	cache.Put("a", GridResult{})
	now = now.Add(30 * time.Second)
	cache.Put("b", GridResult{})

	_, ok := cache.Get("a")
	assert.True(t, ok)

	now = now.Add(45 * time.Second)
	_, ok = cache.Get("a")
	assert.False(t, ok, "entry a expired after one minute")
	assert.Equal(t, 1, cache.Len())

	now = now.Add(time.Minute)
	assert.Equal(t, 1, cache.Sweep())
	assert.Equal(t, 0, cache.Len())
}

func TestGridCache_Disabled(t *testing.T) {
	var nilCache *GridCache
	nilCache.Put("a", GridResult{})
	_, ok := nilCache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, nilCache.Sweep())
	assert.Equal(t, 0, nilCache.Len())

	off := NewGridCache(0, 10)
	off.Put("a", GridResult{})
	_, ok = off.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, off.Len())

	noRoom := NewGridCache(time.Minute, 0)
	assert.Zero(t, noRoom.Put("a", GridResult{}))
	assert.Equal(t, 0, noRoom.Len())
}

func TestGridCache_EvictsAtCapacity(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	cache := NewGridCache(5*time.Minute, 3)
	cache.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.Zero(t, cache.Put(fmt.Sprintf("k%d", i), GridResult{}))
		now = now.Add(time.Second)
	}
	assert.Equal(t, 3, cache.Len())

	// overwriting an existing key never evicts
	assert.Zero(t, cache.Put("k1", GridResult{}))
	assert.Equal(t, 3, cache.Len())

	assert.Equal(t, 1, cache.Put("k3", GridResult{}))
	assert.Equal(t, 3, cache.Len())
	_, ok := cache.Get("k0")
	assert.False(t, ok, "entry closest to expiry is evicted first")
	for _, key := range []string{"k1", "k2", "k3"} {
		_, ok := cache.Get(key)
		assert.True(t, ok, key)
	}

	for i := 4; i < 1000; i++ {
		cache.Put(fmt.Sprintf("k%d", i), GridResult{})
		now = now.Add(time.Millisecond)
	}
	assert.Equal(t, 3, cache.Len())
}

func TestGridCache_FullCacheDropsExpiredFirst(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	cache := NewGridCache(time.Minute, 2)
	cache.now = func() time.Time { return now }

	cache.Put("a", GridResult{})
	cache.Put("b", GridResult{})

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, cache.Put("c", GridResult{}))
	assert.Equal(t, 1, cache.Len())
}
