package registry

import (
	"slices"
	"sync"
)

// Registry maps strategy names to factories of type F
// Packages register their variants from init, callers resolve them by name from config
type Registry[F any] struct {
	mu      sync.RWMutex
	kind    string
	entries map[string]F
}

// New creates an empty registry, kind labels the registry in error messages
func New[F any](kind string) *Registry[F] {
	return &Registry[F]{
		kind:    kind,
		entries: make(map[string]F),
	}
}

// Kind returns the label given at construction
func (r *Registry[F]) Kind() string {
	return r.kind
}

// Register adds a factory by name, re-registering a name replaces the previous factory
func (r *Registry[F]) Register(name string, factory F) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = factory
}

// Get retrieves a factory by name
func (r *Registry[F]) Get(name string) (F, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.entries[name]
	return f, ok
}

// Names returns all registered names in sorted order
func (r *Registry[F]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
