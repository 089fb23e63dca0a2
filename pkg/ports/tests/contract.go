package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// CatalogContractTest is a reusable test suite that verifies if an adapter complies with ports.Catalog.
// setupData holds every definition the catalog is expected to serve, keyed by ID.
func CatalogContractTest(t *testing.T, catalog ports.Catalog, setupData map[string]definition.Definition) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Load (Success)
	t.Run("Load_Success", func(t *testing.T) {
		for id, expected := range setupData {
			def, err := catalog.Load(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error loading automaton %s: %v", id, err)
			}
			if def.ID != id {
				t.Errorf("id mismatch: got %q, want %q", def.ID, id)
			}
			got, want := def.Automaton(), expected.Automaton()
			if len(got.States) != len(want.States) || len(got.Transitions) != len(want.Transitions) {
				t.Errorf("shape mismatch for %s. got %d/%d, want %d/%d", id,
					len(got.States), len(got.Transitions), len(want.States), len(want.Transitions))
				continue
			}
			for i := range want.Transitions {
				if !got.Transitions[i].Equal(want.Transitions[i]) {
					t.Errorf("transition %d of %s: got %v, want %v", i, id, got.Transitions[i], want.Transitions[i])
				}
			}
		}
	})

	// 2. Test Load (NotFound)
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := catalog.Load(ctx, "non-existent-automaton")
		if !errors.Is(err, domain.ErrAutomatonNotFound) {
			t.Errorf("expected ErrAutomatonNotFound, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		ids, err := catalog.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing automata: %v", err)
		}

		if len(ids) != len(setupData) {
			t.Errorf("expected %d automata, got %d", len(setupData), len(ids))
		}

		// Verify all expected IDs are present
		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}

		for id := range setupData {
			if !lookup[id] {
				t.Errorf("automaton %s missing from list", id)
			}
		}
	})
}
