package runtime

import "github.com/aretw0/automata/pkg/domain"

// EpsilonClosure returns every state reachable from the given states using
// only ε-transitions, the given states included.
//
// The expansion is breadth-first, so the output order is fixed by the order
// of the inputs and of the snapshot's transitions. The closure of the empty
// set is empty, and the closure of a closure is itself.
func EpsilonClosure(a domain.Automaton, from []domain.State) []domain.State {
	return newGraph(a).closure(from)
}

func (g *graph) closure(from []domain.State) []domain.State {
	if len(from) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(from))
	result := make([]domain.State, 0, len(from))
	queue := make([]domain.State, 0, len(from))

	for _, s := range from {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}
		result = append(result, s)
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, t := range g.out[current.Name] {
			if !t.IsEpsilon() {
				continue
			}
			if _, ok := seen[t.To]; ok {
				continue
			}
			next, ok := g.state(t.To)
			if !ok {
				continue
			}
			seen[t.To] = struct{}{}
			result = append(result, next)
			queue = append(queue, next)
		}
	}

	return result
}
