// Package sections maps instructor dashboard section ids to the code that
// mounts them. A registry is built once at startup and handed to whoever
// mounts sections; there is no package-level table.
package sections

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrDuplicate = errors.New("section already registered")
	ErrUnknown   = errors.New("unknown section")
)

// Factory mounts a fresh instance of a section
type Factory func() (tea.Model, error)

// Registry resolves section ids to factories
type Registry interface {
	Register(id string, f Factory) error
	Lookup(id string) (Factory, bool)
	IDs() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() Registry {
	return &registry{factories: make(map[string]Factory)}
}

func (r *registry) Register(id string, f Factory) error {
	if id == "" || f == nil {
		return fmt.Errorf("register %q: id and factory are required", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("register %q: %w", id, ErrDuplicate)
	}
	r.factories[id] = f
	return nil
}

func (r *registry) Lookup(id string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	return f, ok
}

// IDs lists the registered section ids in sorted order
func (r *registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Mount looks up id and builds the section
func Mount(r Registry, id string) (tea.Model, error) {
	f, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("mount %q: %w", id, ErrUnknown)
	}
	m, err := f()
	if err != nil {
		return nil, fmt.Errorf("mount %q: %w", id, err)
	}
	return m, nil
}
