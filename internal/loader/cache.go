package loader

import (
	"sync"

	"github.com/medar/arviewer/pkg/scene"
)

// cacheKey identifies one decoded asset
type cacheKey struct {
	path         string
	disableDraco bool
}

// Cache keeps decoded models by path and decode options. Cached models are
// never mutated; callers mount clones.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*scene.Model
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*scene.Model)}
}

func keyFor(path string, opts Options) cacheKey {
	return cacheKey{path: path, disableDraco: opts.DisableDraco}
}

// Get returns the cached model for path and options
func (c *Cache) Get(path string, opts Options) (*scene.Model, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.entries[keyFor(path, opts)]
	return m, ok
}

// Put stores a decoded model
func (c *Cache) Put(path string, opts Options, model *scene.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[keyFor(path, opts)] = model
}

// Invalidate drops every entry for path
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.path == path {
			delete(c.entries, k)
		}
	}
}

// Clear drops all entries
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*scene.Model)
}

// Len returns the number of cached models
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
