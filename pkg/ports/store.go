package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/definition"
)

// Catalog is a read-only source of named automata (a directory of
// documents, a store, a fixture set).
type Catalog interface {
	// Load retrieves a definition by ID.
	// Returns domain.ErrAutomatonNotFound if the ID does not exist.
	Load(ctx context.Context, id string) (definition.Definition, error)

	// List returns the IDs of every automaton, sorted.
	List(ctx context.Context) ([]string, error)
}

// AutomatonStore is a writable Catalog, used by servers to hold the
// automata their clients edit.
type AutomatonStore interface {
	Catalog

	// Save creates or replaces the definition under def.ID.
	Save(ctx context.Context, def definition.Definition) error

	// Delete removes a definition. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}
