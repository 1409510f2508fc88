package obstacle

import (
	"fmt"
	"slices"
	"sync"

	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/vmath"
)

// Registry owns a set of obstacles and the ID allocator that names them
// IDs start at 1 and are never reused within a registry
// Reads return an immutable snapshot, mutations replace it
type Registry struct {
	mu     sync.RWMutex
	nextID ID
	items  []Obstacle
}

func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

func (r *Registry) allocate() ID {
	id := r.nextID
	r.nextID++
	return id
}

// add appends under the write lock, build receives the allocated id
func (r *Registry) add(build func(id ID) Obstacle) Obstacle {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := build(r.allocate())
	items := make([]Obstacle, len(r.items), len(r.items)+1)
	copy(items, r.items)
	r.items = append(items, o)
	return o
}

// AddTree registers a circular obstacle
func (r *Registry) AddTree(center vmath.Vec2, radius, bounciness float64) (*Tree, error) {
	if err := validateBounciness(bounciness); err != nil {
		return nil, fmt.Errorf("tree: %w", err)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("tree radius %g: %w", radius, ErrInvalidGeometry)
	}
	o := r.add(func(id ID) Obstacle { return newTree(id, center, radius, bounciness) })
	return o.(*Tree), nil
}

// AddBox registers a rectangle spanned by two opposite corners
func (r *Registry) AddBox(a, b vmath.Vec2, bounciness float64) (*Box, error) {
	if err := validateBounciness(bounciness); err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	if a.X == b.X || a.Y == b.Y {
		return nil, fmt.Errorf("box %v-%v has zero area: %w", a, b, ErrInvalidGeometry)
	}
	o := r.add(func(id ID) Obstacle { return newBox(id, a, b, bounciness) })
	return o.(*Box), nil
}

// AddWall registers a wall between two endpoints with the default thickness
func (r *Registry) AddWall(a, b vmath.Vec2, bounciness float64) (*Wall, error) {
	return r.AddWallWithThickness(a, b, parameter.WallThickness, bounciness)
}

func (r *Registry) AddWallWithThickness(a, b vmath.Vec2, thickness, bounciness float64) (*Wall, error) {
	if err := validateBounciness(bounciness); err != nil {
		return nil, fmt.Errorf("wall: %w", err)
	}
	if a == b {
		return nil, fmt.Errorf("wall endpoints coincide at %v: %w", a, ErrInvalidGeometry)
	}
	if !(thickness > 0) {
		return nil, fmt.Errorf("wall thickness %g: %w", thickness, ErrInvalidGeometry)
	}
	o := r.add(func(id ID) Obstacle { return newWall(id, a, b, thickness, bounciness) })
	return o.(*Wall), nil
}

// Remove deletes an obstacle by id
func (r *Registry) Remove(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := slices.IndexFunc(r.items, func(o Obstacle) bool { return o.ID() == id })
	if idx < 0 {
		return fmt.Errorf("remove %d: %w", id, ErrNotFound)
	}
	r.items = slices.Delete(slices.Clone(r.items), idx, idx+1)
	return nil
}

// Get retrieves an obstacle by id
func (r *Registry) Get(id ID) (Obstacle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.items {
		if o.ID() == id {
			return o, true
		}
	}
	return nil, false
}

// All returns obstacles in insertion order, the slice must not be modified
func (r *Registry) All() []Obstacle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// ContainsPoint reports whether any obstacle contains p
func (r *Registry) ContainsPoint(p vmath.Vec2) bool {
	for _, o := range r.All() {
		if o.ContainsPoint(p) {
			return true
		}
	}
	return false
}
