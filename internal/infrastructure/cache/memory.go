package cache

import (
	"context"
	"sync"
	"time"

	"github.com/scanlens/backend/internal/domain"
)

// cacheItem represents a single resolved product with expiration
type cacheItem struct {
	Product    *domain.CanonicalProduct
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory product cache with TTL support.
// It is a lookaside for repeat scans within a process lifetime, not
// persistence; a restart always re-resolves.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory product cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Cleanup goroutine removes expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a resolved product by barcode
func (c *MemoryCache) Get(ctx context.Context, barcode string) (*domain.CanonicalProduct, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[barcode]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.Product, nil
}

// Set stores a resolved product with TTL
func (c *MemoryCache) Set(ctx context.Context, barcode string, product *domain.CanonicalProduct, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[barcode] = cacheItem{
		Product:    product,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a barcode from the cache
func (c *MemoryCache) Delete(ctx context.Context, barcode string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, barcode)
	return nil
}

// Exists checks if a barcode is cached and not expired
func (c *MemoryCache) Exists(ctx context.Context, barcode string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[barcode]
	if !exists {
		return false, nil
	}

	if time.Now().After(item.Expiration) {
		return false, nil
	}

	return true, nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.Expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
