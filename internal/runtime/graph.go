package runtime

import "github.com/aretw0/automata/pkg/domain"

// graph is a read-only index over an automaton snapshot.
// Transitions whose endpoints are missing from the snapshot are kept in
// the outgoing lists but never followed.
type graph struct {
	states []domain.State
	index  map[string]int
	out    map[string][]domain.Transition
}

func newGraph(a domain.Automaton) *graph {
	g := &graph{
		states: a.States,
		index:  a.Index(),
		out:    make(map[string][]domain.Transition, len(a.States)),
	}
	for _, t := range a.Transitions {
		g.out[t.From] = append(g.out[t.From], t)
	}
	return g
}

func (g *graph) state(name string) (domain.State, bool) {
	i, ok := g.index[name]
	if !ok {
		return domain.State{}, false
	}
	return g.states[i], true
}

// extend returns a fresh slice so sibling configurations never share a
// backing array.
func extend[T any](base []T, items ...T) []T {
	out := make([]T, 0, len(base)+len(items))
	out = append(out, base...)
	return append(out, items...)
}
