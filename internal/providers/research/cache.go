package research

import (
	"maps"
	"slices"
	"sync"

	"github.com/duetsim/duet/internal/core"
)

// ToolCache avoids re-listing tools from every server on each research step.
// Get hands out copies so callers never alias the cached state.
type ToolCache struct {
	mu      sync.RWMutex
	tools   []core.Tool
	routing map[string]string // tool name -> server name
	valid   bool
}

func NewToolCache() *ToolCache {
	return &ToolCache{
		routing: make(map[string]string),
	}
}

func (c *ToolCache) Get() ([]core.Tool, map[string]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return nil, nil, false
	}
	return slices.Clone(c.tools), maps.Clone(c.routing), true
}

func (c *ToolCache) Update(tools []core.Tool, routing map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tools = slices.Clone(tools)
	c.routing = maps.Clone(routing)
	c.valid = true
}

func (c *ToolCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = false
	c.tools = nil
	c.routing = nil
}
