package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.AutomatonStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]definition.Definition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]definition.Definition),
	}
}

// NewFromDefinitions creates a store pre-populated with definitions.
// This is useful for tests and fixtures.
func NewFromDefinitions(defs ...definition.Definition) (*Store, error) {
	s := NewStore()
	for _, def := range defs {
		if err := s.Save(context.Background(), def); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save stores a copy of the definition.
func (s *Store) Save(ctx context.Context, def definition.Definition) error {
	if def.ID == "" {
		return fmt.Errorf("%w: missing id", domain.ErrInvalidDefinition)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.ID] = clone(def)
	return nil
}

// Load returns a copy of the stored definition, so callers can't mutate
// store state through shared slices.
func (s *Store) Load(ctx context.Context, id string) (definition.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[id]
	if !ok {
		return definition.Definition{}, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
	}
	return clone(def), nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func clone(def definition.Definition) definition.Definition {
	def.States = slices.Clone(def.States)
	def.Transitions = slices.Clone(def.Transitions)
	return def
}
