package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
)

// Builder manages the automaton construction.
type Builder struct {
	order  []string
	states map[string]*StateBuilder
	edges  []domain.Transition
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// State declares a state in the automaton.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		state:   domain.NewState(name),
		builder: b,
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the declarations into a snapshot.
// States keep declaration order and transitions keep the order of the On calls.
func (b *Builder) Build() (domain.Automaton, error) {
	states := make([]domain.State, 0, len(b.order))
	for _, name := range b.order {
		states = append(states, b.states[name].state)
	}

	ws, err := editor.FromAutomaton(domain.NewAutomaton(states, b.edges))
	if err != nil {
		return domain.Automaton{}, fmt.Errorf("failed to build automaton: %w", err)
	}
	return ws.Snapshot(), nil
}

// MustBuild is Build that panics on error. Intended for tests and fixtures.
func (b *Builder) MustBuild() domain.Automaton {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
