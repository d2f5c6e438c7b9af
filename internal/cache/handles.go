// Package cache keeps built projection handles per theatre.
package cache

import (
	"sync"

	"github.com/eytandecker/theatre-mcp/internal/projection"
)

// Handles is a concurrent-safe map of theatre id to projection handle.
type Handles struct {
	mu      sync.RWMutex
	handles map[string]projection.Handle
}

// NewHandles creates an empty cache.
func NewHandles() *Handles {
	return &Handles{handles: make(map[string]projection.Handle)}
}

// Get returns the cached handle for theatre, if any.
func (c *Handles) Get(theatre string) (projection.Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handles[theatre]
	return h, ok
}

// GetOrBuild returns the cached handle or calls build and stores its result.
// Failed builds are not cached. Concurrent callers may build the same theatre
// twice; the first stored handle wins.
func (c *Handles) GetOrBuild(theatre string, build func() (projection.Handle, error)) (projection.Handle, error) {
	if h, ok := c.Get(theatre); ok {
		return h, nil
	}

	h, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.handles[theatre]; ok {
		return existing, nil
	}
	c.handles[theatre] = h
	return h, nil
}

// Len returns the number of cached handles.
func (c *Handles) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}
