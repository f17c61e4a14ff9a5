package artifacts

import (
	"sort"
	"sync"

	"artifact-host/core/mre"
)

// PrefabCache maps artifact keys to their preloaded prefab asset.
type PrefabCache struct {
	mu      sync.RWMutex
	entries map[string]mre.Asset
}

// NewPrefabCache creates an empty cache.
func NewPrefabCache() *PrefabCache {
	return &PrefabCache{entries: make(map[string]mre.Asset)}
}

// Set records the prefab of an artifact.
func (c *PrefabCache) Set(key string, asset mre.Asset) {
	c.mu.Lock()
	c.entries[key] = asset
	c.mu.Unlock()
}

// Get returns the prefab of an artifact.
func (c *PrefabCache) Get(key string) (mre.Asset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.entries[key]
	return a, ok
}

// Len returns the number of cached prefabs.
func (c *PrefabCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached artifact keys in sorted order.
func (c *PrefabCache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Clear drops every entry.
func (c *PrefabCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]mre.Asset)
	c.mu.Unlock()
}
