package dsl

import "github.com/aretw0/automata/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state   domain.State
	builder *Builder
}

// Initial marks the state as initial.
func (s *StateBuilder) Initial() *StateBuilder {
	s.state.Initial = true
	return s
}

// Final marks the state as final (accepting).
func (s *StateBuilder) Final() *StateBuilder {
	s.state.Final = true
	return s
}

// At sets the display position.
func (s *StateBuilder) At(x, y float64) *StateBuilder {
	s.state.X, s.state.Y = x, y
	return s
}

// On adds a transition to target labelled with symbols ("a" or "a,b,c").
// The target must be declared before Build.
func (s *StateBuilder) On(symbols string, target string) *StateBuilder {
	s.builder.edges = append(s.builder.edges, domain.NewTransition(s.state.Name, target, symbols))
	return s
}

// Epsilon adds an ε-transition to target.
func (s *StateBuilder) Epsilon(target string) *StateBuilder {
	return s.On(domain.Epsilon, target)
}

// Loop adds a self-loop labelled with symbols.
func (s *StateBuilder) Loop(symbols string) *StateBuilder {
	return s.On(symbols, s.state.Name)
}

// State switches to (or declares) another state, for chaining.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Build returns the underlying domain.State.
// This is primarily used by the Builder, but exposed for advanced usage.
func (s *StateBuilder) Build() domain.State {
	return s.state
}
