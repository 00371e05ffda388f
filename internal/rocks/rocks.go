// Package rocks holds the rock registry the rock pipeline draws its category
// count from, and loads rock definitions from local or remote sources.
package rocks

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrInvalidRock is wrapped by every rock definition error.
var ErrInvalidRock = errors.New("rocks: invalid rock")

// Categories of rock.
const (
	Sedimentary      = "sedimentary"
	Metamorphic      = "metamorphic"
	IgneousIntrusive = "igneous_intrusive"
	IgneousExtrusive = "igneous_extrusive"
)

// Rock is one rock definition.
type Rock struct {
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
	Layers   []int  `yaml:"layers" json:"layers"` // rock layers the rock may appear in, 1 to 3
}

// InLayer reports whether r may appear in layer n.
func (r Rock) InLayer(n int) bool { return slices.Contains(r.Layers, n) }

func validate(rocks []Rock) error {
	if len(rocks) == 0 {
		return fmt.Errorf("%w: no rocks defined", ErrInvalidRock)
	}
	seen := make(map[string]struct{}, len(rocks))
	for i, r := range rocks {
		if r.Name == "" {
			return fmt.Errorf("%w: rock %d has no name", ErrInvalidRock, i)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("%w: duplicate rock %q", ErrInvalidRock, r.Name)
		}
		seen[r.Name] = struct{}{}
		switch r.Category {
		case Sedimentary, Metamorphic, IgneousIntrusive, IgneousExtrusive:
		default:
			return fmt.Errorf("%w: rock %q has unknown category %q", ErrInvalidRock, r.Name, r.Category)
		}
		for _, l := range r.Layers {
			if l < 1 || l > 3 {
				return fmt.Errorf("%w: rock %q has layer %d", ErrInvalidRock, r.Name, l)
			}
		}
	}
	return nil
}

// Registry is the set of registered rocks, indexed by registration order.
// Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	rocks     []Rock
	listeners []func()
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Replace validates rocks and swaps them in, then runs the change callbacks.
func (r *Registry) Replace(rocks []Rock) error {
	if err := validate(rocks); err != nil {
		return err
	}
	r.mu.Lock()
	r.rocks = slices.Clone(rocks)
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return nil
}

// Count returns the number of registered rocks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rocks)
}

// Rock returns the rock at index i.
func (r *Registry) Rock(i int) (Rock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.rocks) {
		return Rock{}, fmt.Errorf("rocks: index %d out of range [0,%d)", i, len(r.rocks))
	}
	return r.rocks[i], nil
}

// All returns a copy of the registered rocks.
func (r *Registry) All() []Rock {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rocks)
}

// OnChange registers fn to run after every Replace.
func (r *Registry) OnChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// DefaultRocks returns the built-in rock set.
func DefaultRocks() []Rock {
	shallow := []int{1}
	deep := []int{1, 2}
	deepest := []int{1, 2, 3}
	return []Rock{
		{"granite", IgneousIntrusive, deepest},
		{"diorite", IgneousIntrusive, deepest},
		{"gabbro", IgneousIntrusive, deepest},
		{"shale", Sedimentary, shallow},
		{"claystone", Sedimentary, shallow},
		{"rocksalt", Sedimentary, shallow},
		{"limestone", Sedimentary, shallow},
		{"conglomerate", Sedimentary, shallow},
		{"dolomite", Sedimentary, shallow},
		{"chert", Sedimentary, shallow},
		{"chalk", Sedimentary, shallow},
		{"rhyolite", IgneousExtrusive, deepest},
		{"basalt", IgneousExtrusive, deepest},
		{"andesite", IgneousExtrusive, deepest},
		{"dacite", IgneousExtrusive, deepest},
		{"quartzite", Metamorphic, deep},
		{"slate", Metamorphic, deep},
		{"phyllite", Metamorphic, deep},
		{"schist", Metamorphic, deep},
		{"gneiss", Metamorphic, deep},
		{"marble", Metamorphic, deep},
	}
}
