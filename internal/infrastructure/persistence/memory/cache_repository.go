// Package memory provides in-memory implementations for development and testing
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/culinamind/backend/internal/ports/outbound"
	"github.com/culinamind/backend/pkg/errors"
)

// CacheRepository implements outbound.CacheRepository with an in-process map.
// Entries expire lazily on read and eagerly via a background cleanup loop.
type CacheRepository struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	stop  chan struct{}
	once  sync.Once
}

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// NewCacheRepository creates a cache and starts its cleanup loop.
func NewCacheRepository() *CacheRepository {
	c := &CacheRepository{
		items: make(map[string]cacheItem),
		stop:  make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached value or a not-found error when missing or expired.
func (c *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || item.expired() {
		return nil, errors.NewNotFoundError("cache key not found")
	}
	return item.value, nil
}

// Set stores a value. A non-positive ttl means no expiry.
func (c *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	item := cacheItem{value: value}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (c *CacheRepository) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

// Exists reports whether a live entry exists for the key.
func (c *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	return ok && !item.expired(), nil
}

// Close stops the cleanup loop.
func (c *CacheRepository) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (i cacheItem) expired() bool {
	return !i.expiresAt.IsZero() && time.Now().After(i.expiresAt)
}

func (c *CacheRepository) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, item := range c.items {
				if item.expired() {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)
