// Package registry maps schema names to record factories.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/schema"
)

// Info describes a registered schema.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Registry manages the available schemas.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]func() *schema.Struct
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]func() *schema.Struct),
	}
}

// Register validates a probe record from factory and adds it under name.
// If a schema with the same name exists, it is overwritten.
func (r *Registry) Register(name string, factory func() *schema.Struct) error {
	if name == "" {
		return fmt.Errorf("schema name is required")
	}
	if factory == nil {
		return fmt.Errorf("schema %s: factory is nil", name)
	}
	if err := schema.Validate(factory()); err != nil {
		return fmt.Errorf("schema %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = factory
	return nil
}

// MustRegister is like Register but panics on an invalid schema.
func (r *Registry) MustRegister(name string, factory func() *schema.Struct) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New builds a fresh record of the named schema.
// Returns domain.ErrUnknownSchema if nothing is registered under name.
func (r *Registry) New(name string) (*schema.Struct, error) {
	r.mu.RLock()
	factory, ok := r.schemas[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSchema, name)
	}
	return factory(), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.schemas[name]
	return ok
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// List describes every registered schema in lexical order.
func (r *Registry) List() []Info {
	names := r.Names()
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		root, err := r.New(name)
		if err != nil {
			continue
		}
		infos = append(infos, Info{Name: name, Description: root.Description()})
	}
	return infos
}
