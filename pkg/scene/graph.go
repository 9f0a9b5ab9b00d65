// Package scene models the bridge's view of the editor's live object
// graph. The graph is an injected collaborator: commands only need
// find-by-name plus component and material mutation on the found object.
package scene

import (
	"sync"

	"github.com/forgebridge/forgebridge/pkg/material"
)

// Object is a named object in the open scene.
type Object struct {
	Name         string   `json:"name"`
	Components   []string `json:"components,omitempty"`
	MaterialName string   `json:"materialName,omitempty"`
	MaterialPath string   `json:"materialPath,omitempty"`
	// InstanceMaterial is a per-object material with no backing asset.
	// Nil when the object uses a shared material.
	InstanceMaterial *material.Material `json:"instanceMaterial,omitempty"`
}

// HasComponent reports whether a component is already attached.
func (o *Object) HasComponent(name string) bool {
	for _, c := range o.Components {
		if c == name {
			return true
		}
	}
	return false
}

// Graph is the object-graph collaborator boundary.
type Graph interface {
	// Find returns the first object with the given name.
	Find(name string) (*Object, bool)
}

// MemoryGraph is an in-process graph, used when the bridge hosts the
// scene itself and as the test double for handlers.
type MemoryGraph struct {
	mu      sync.RWMutex
	objects map[string]*Object
	order   []string
}

// NewMemoryGraph creates an empty graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{objects: make(map[string]*Object)}
}

// Add inserts or replaces an object by name.
func (g *MemoryGraph) Add(obj *Object) {
	if obj == nil || obj.Name == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.objects[obj.Name]; !ok {
		g.order = append(g.order, obj.Name)
	}
	g.objects[obj.Name] = obj
}

// Find returns the object with the given name.
func (g *MemoryGraph) Find(name string) (*Object, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	obj, ok := g.objects[name]
	return obj, ok
}

// Names returns object names in insertion order.
func (g *MemoryGraph) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}
