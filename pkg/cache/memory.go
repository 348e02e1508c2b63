package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache keeps entries in process memory. When the entry count
// reaches the limit, expired entries are swept and, if still full, an
// arbitrary entry is evicted.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	limit   int
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates an in-process cache holding at most limit entries.
// A limit of zero or less means unbounded.
func NewMemoryCache(limit int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		limit:   limit,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.data, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.limit > 0 && len(c.entries) >= c.limit {
		c.evictLocked()
	}
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) Close() error { return nil }

func (c *MemoryCache) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.limit {
		return
	}
	for k := range c.entries {
		delete(c.entries, k)
		return
	}
}

var _ Cache = (*MemoryCache)(nil)
