package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// GoCache in-memory front for cached datasets using go-cache
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a new GoCache instance
// defaultExpiration: default expiration time for items
// cleanupInterval: interval for cleaning up expired items
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns a copy of the value stored under key
func (gc *GoCache) Get(key string) ([]byte, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := value.([]byte)
	if !ok {
		return nil, false
	}
	return cloneBytes(data), true
}

// Set stores a copy of value with the given timeout.
// 0 uses the default expiration, cache.NoExpiration keeps it forever.
func (gc *GoCache) Set(key string, value []byte, timeout time.Duration) {
	gc.cache.Set(key, cloneBytes(value), timeout)
}

// Delete removes the item stored under key
func (gc *GoCache) Delete(key string) {
	gc.cache.Delete(key)
}

// Clear removes all items from cache
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of items in cache
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
