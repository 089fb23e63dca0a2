package runtime

import "github.com/aretw0/automata/pkg/domain"

type edgeKey struct {
	from   string
	symbol string
}

// IsDeterministic reports whether the transition set has DFA semantics:
// no ε-transitions and at most one destination per (origin, symbol).
//
// The result depends only on the given snapshot and must be recomputed
// after every edit.
func IsDeterministic(transitions []domain.Transition) bool {
	targets := make(map[edgeKey]map[string]struct{})

	for _, t := range transitions {
		if t.IsEpsilon() {
			return false
		}
		for _, sym := range t.Symbols() {
			k := edgeKey{from: t.From, symbol: sym}
			dest, ok := targets[k]
			if !ok {
				dest = make(map[string]struct{}, 1)
				targets[k] = dest
			}
			dest[t.To] = struct{}{}
			if len(dest) > 1 {
				return false
			}
		}
	}

	return true
}

// Classify returns KindDFA or KindNFA for the transition set.
func Classify(transitions []domain.Transition) domain.Kind {
	if IsDeterministic(transitions) {
		return domain.KindDFA
	}
	return domain.KindNFA
}
