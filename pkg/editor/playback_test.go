package editor_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayback(t *testing.T) {
	q0 := domain.State{Name: "q0", Initial: true}
	q1 := domain.State{Name: "q1"}
	q2 := domain.State{Name: "q2", Final: true}
	res := domain.NewSimulationResult(true,
		[]domain.State{q0, q1, q2},
		[]string{domain.Epsilon, "a"},
		"a", "accepted")

	p := editor.NewPlayback(res)
	require.Equal(t, 3, p.Len())
	assert.False(t, p.Prev())

	f, ok := p.Frame()
	require.True(t, ok)
	assert.Equal(t, 0, f.Index)
	assert.Empty(t, f.Symbol)
	assert.Equal(t, "step 1 of 3 | state q0 (initial)", f.String())
	assert.Equal(t, "a", f.Progress("a"))

	require.True(t, p.Next())
	f, _ = p.Frame()
	assert.Equal(t, domain.Epsilon, f.Symbol)
	assert.Equal(t, 0, f.Consumed)
	assert.False(t, f.Accepted)

	require.True(t, p.Next())
	f, _ = p.Frame()
	assert.True(t, f.Last)
	assert.True(t, f.Accepted)
	assert.Equal(t, 1, f.Consumed)
	assert.Equal(t, "[a]", f.Progress("a"))
	assert.Equal(t, "step 3 of 3 | state q2 | consumed 'a' | FINAL", f.String())
	assert.False(t, p.Next())

	require.True(t, p.Prev())
	p.Reset()
	f, _ = p.Frame()
	assert.Equal(t, 0, f.Index)
}

func TestPlayback_RejectedAndEmpty(t *testing.T) {
	res := domain.NewSimulationResult(false, []domain.State{{Name: "q0"}}, nil, "", "rejected")
	p := editor.NewPlayback(res)

	f, ok := p.Frame()
	require.True(t, ok)
	assert.True(t, f.Last)
	assert.False(t, f.Accepted)
	assert.Equal(t, domain.Epsilon, f.Progress(""))
	assert.Contains(t, f.String(), "NON-FINAL")

	empty := editor.NewPlayback(domain.NewSimulationResult(false, nil, nil, "a", "no initial state defined"))
	_, ok = empty.Frame()
	assert.False(t, ok)
	assert.False(t, empty.Next())
}
