package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAutomatonStoreContract runs a suite of tests to verify that an AutomatonStore implementation
// adheres to the defined interface contract.
func RunAutomatonStoreContract(t *testing.T, store AutomatonStore) {
	ctx := context.Background()
	id := "contract-test-" + time.Now().Format("20060102150405")

	sample := func(id string) definition.Definition {
		def := definition.New(id, domain.NewAutomaton(
			[]domain.State{{Name: "q0", Initial: true, X: 12.5}, {Name: "q1", Final: true}},
			[]domain.Transition{
				domain.NewTransition("q0", "q1", "a,b"),
				domain.NewTransition("q1", "q0", "ε"),
			},
		))
		def.Name = "Contract sample"
		return def
	}

	t.Run("Save and Load", func(t *testing.T) {
		def := sample(id)
		require.NoError(t, store.Save(ctx, def), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, def.ID, loaded.ID)
		assert.Equal(t, def.Name, loaded.Name)
		assert.Equal(t, def.Automaton(), loaded.Automaton(), "states and transitions keep their order")
	})

	t.Run("Save Replaces", func(t *testing.T) {
		def := sample(id)
		def.States[1].Final = false
		require.NoError(t, store.Save(ctx, def))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.False(t, loaded.States[1].Final)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
	})

	t.Run("Isolation", func(t *testing.T) {
		def := sample(id + "-iso")
		require.NoError(t, store.Save(ctx, def))
		defer func() { _ = store.Delete(ctx, def.ID) }()

		def.States[0].Name = "mutated"
		loaded, err := store.Load(ctx, def.ID)
		require.NoError(t, err)
		assert.Equal(t, "q0", loaded.States[0].Name, "store must not alias caller slices")

		loaded.Transitions[0].Label = "z"
		again, err := store.Load(ctx, def.ID)
		require.NoError(t, err)
		assert.Equal(t, "a,b", again.Transitions[0].Label)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sample(id)))

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound, "Load after Delete should return ErrAutomatonNotFound")
		assert.NoError(t, store.Delete(ctx, id), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-b"
		id2 := id + "-a"
		require.NoError(t, store.Save(ctx, sample(id1)))
		require.NoError(t, store.Save(ctx, sample(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.IsNonDecreasing(t, ids)
	})
}
