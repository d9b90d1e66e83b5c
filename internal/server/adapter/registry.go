package adapter

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/iudanet/medsync/internal/server/storage"
)

var (
	// ErrUnknownEntityType is returned when no adapter is registered for a type
	ErrUnknownEntityType = errors.New("unknown entity type")
	// ErrAlreadyRegistered is returned on duplicate registration
	ErrAlreadyRegistered = errors.New("entity type already registered")
)

// Registry maps entity type name to its adapter.
// Заполняется при старте, дальше используется только на чтение.
type Registry struct {
	adapters map[string]Adapter
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// NewTableRegistry registers a TableAdapter for every type
func NewTableRegistry(store storage.EntityStorage, entityTypes []string) (*Registry, error) {
	r := NewRegistry()
	for _, t := range entityTypes {
		if err := r.Register(NewTableAdapter(t, store)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds adapter under its EntityType
func (r *Registry) Register(a Adapter) error {
	name := a.EntityType()
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownEntityType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.adapters[name] = a
	return nil
}

// Get returns adapter for entityType
func (r *Registry) Get(entityType string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	return a, nil
}

// Types returns registered type names in sorted order
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.adapters))
	for t := range r.adapters {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
