package scene

import "sync"

// Behavior describes an attachable component. Implementations are
// registered at build time; attachment never searches types at runtime.
type Behavior interface {
	ComponentName() string
}

// BehaviorFunc adapts a component name into a Behavior.
type BehaviorFunc string

// ComponentName returns the component identifier.
func (b BehaviorFunc) ComponentName() string { return string(b) }

// BehaviorRegistry maps declared behavior names to constructors.
type BehaviorRegistry struct {
	mu        sync.RWMutex
	factories map[string]func() Behavior
}

// NewBehaviorRegistry creates an empty registry.
func NewBehaviorRegistry() *BehaviorRegistry {
	return &BehaviorRegistry{factories: make(map[string]func() Behavior)}
}

// Register binds a behavior name to its constructor.
func (r *BehaviorRegistry) Register(name string, factory func() Behavior) {
	if name == "" || factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Resolve constructs the behavior registered under name.
func (r *BehaviorRegistry) Resolve(name string) (Behavior, bool) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(), true
}

// DefaultBehaviors returns a registry preloaded with the built-in
// component set the host editor ships.
func DefaultBehaviors() *BehaviorRegistry {
	r := NewBehaviorRegistry()
	for _, name := range []string{"Rotator", "Bobber", "Billboard", "AutoDestroy"} {
		name := name
		r.Register(name, func() Behavior { return BehaviorFunc(name) })
	}
	return r
}
