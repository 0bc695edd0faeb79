package attendance

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type cacheEntry struct {
	result    GridResult
	expiresAt time.Time
}

// GridCache memoizes ComputeAttendanceGrid keyed by a hash of the exact inputs.
// It holds at most maxEntries results. A nil cache, or one with a non-positive
// TTL or size, never stores anything.
type GridCache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	mu         sync.Mutex
	entries    map[string]cacheEntry
}

func NewGridCache(ttl time.Duration, maxEntries int) *GridCache {
	return &GridCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]cacheEntry),
	}
}

// CacheKey hashes the canonical JSON encoding of the input. Slice order is part
// of the key because it decides holiday conflicts and row order.
func CacheKey(in GridInput) (string, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode grid input: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func (c *GridCache) enabled() bool {
	return c != nil && c.ttl > 0 && c.maxEntries > 0
}

func (c *GridCache) Get(key string) (GridResult, bool) {
	if !c.enabled() {
		return GridResult{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return GridResult{}, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return GridResult{}, false
	}
	return entry.result, true
}

// Put stores result under key and returns how many entries were evicted to
// make room. A full cache drops expired entries first, then the entry closest
// to expiry.
func (c *GridCache) Put(key string, result GridResult) int {
	if !c.enabled() {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		evicted = c.sweepLocked(now)
		for len(c.entries) >= c.maxEntries {
			c.evictSoonestLocked()
			evicted++
		}
	}
	c.entries[key] = cacheEntry{result: result, expiresAt: now.Add(c.ttl)}
	return evicted
}

// Sweep removes expired entries and returns how many were removed.
func (c *GridCache) Sweep() int {
	if !c.enabled() {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sweepLocked(c.now())
}

func (c *GridCache) sweepLocked(now time.Time) int {
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *GridCache) evictSoonestLocked() {
	var (
		victim string
		first  time.Time
		found  bool
	)
	for key, entry := range c.entries {
		if !found || entry.expiresAt.Before(first) || (entry.expiresAt.Equal(first) && key < victim) {
			victim, first, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(c.entries, victim)
	}
}

func (c *GridCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
