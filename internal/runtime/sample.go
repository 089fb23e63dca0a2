package runtime

import (
	"slices"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// sampleBudget caps the state-set steps one Sample call may compute.
const sampleBudget = 1 << 20

// Sample enumerates accepted words in shortlex order over alphabet,
// starting with the empty word. It stops after limit words or once words
// grow longer than maxLen. Symbols longer than one rune can never be
// consumed by a simulation and are ignored.
//
// Prefixes carry the set of states they reach, and a prefix is only
// extended when that set can still reach a final state in exactly the
// number of symbols left, so the work grows with the words returned and
// not with the size of the alphabet power set.
func (s *Simulator) Sample(a domain.Automaton, alphabet []string, limit, maxLen int) []string {
	if limit <= 0 || maxLen < 0 {
		return nil
	}

	var symbols []string
	for _, sym := range alphabet {
		if utf8.RuneCountInString(sym) == 1 {
			symbols = append(symbols, sym)
		}
	}

	initial, ok := a.Initial()
	if !ok {
		return []string{}
	}

	sp := newSampler(newGraph(a), symbols, limit)
	start := sp.closure([]int{sp.g.index[initial.Name]})

	for length := 0; length <= maxLen && !sp.stopped(); length++ {
		if !sp.extendHorizon(length) {
			break
		}
		if sp.canFinish(start, length) {
			sp.collect(start, "", length)
		}
	}

	if sp.budget <= 0 {
		s.logger.Debug("language sample budget exhausted", "found", len(sp.found), "max_len", maxLen)
	} else {
		s.logger.Debug("language sample done", "found", len(sp.found), "max_len", maxLen)
	}
	return sp.found
}

// sampler walks the subset construction lazily, one prefix at a time.
type sampler struct {
	g       *graph
	symbols []string
	limit   int
	budget  int
	found   []string

	closures [][]int  // ε-closure of each state, by index
	succ     [][]int  // states one symbol away from each closure
	finish   [][]bool // finish[k][i]: state i reaches a final state on exactly k symbols
}

func newSampler(g *graph, symbols []string, limit int) *sampler {
	sp := &sampler{
		g:        g,
		symbols:  symbols,
		limit:    limit,
		budget:   sampleBudget,
		found:    []string{},
		closures: make([][]int, len(g.states)),
		succ:     make([][]int, len(g.states)),
	}

	for i, st := range g.states {
		for _, member := range g.closure([]domain.State{st}) {
			sp.closures[i] = append(sp.closures[i], g.index[member.Name])
		}
	}
	for i := range g.states {
		seen := make(map[int]bool)
		for _, j := range sp.closures[i] {
			for _, t := range g.out[g.states[j].Name] {
				dest, ok := g.index[t.To]
				if !ok || seen[dest] || !sp.consumable(t) {
					continue
				}
				seen[dest] = true
				sp.succ[i] = append(sp.succ[i], dest)
			}
		}
	}
	return sp
}

// consumable reports whether t accepts at least one sampled symbol.
func (sp *sampler) consumable(t domain.Transition) bool {
	for _, sym := range sp.symbols {
		if t.Accepts(sym) {
			return true
		}
	}
	return false
}

// extendHorizon computes finish up to length. It reports false once no
// state can finish on that many symbols, since no longer word can either.
func (sp *sampler) extendHorizon(length int) bool {
	for k := len(sp.finish); k <= length; k++ {
		row := make([]bool, len(sp.g.states))
		reachable := false
		for i := range sp.g.states {
			if k == 0 {
				for _, j := range sp.closures[i] {
					row[i] = row[i] || sp.g.states[j].Final
				}
			} else {
				for _, d := range sp.succ[i] {
					if sp.finish[k-1][d] {
						row[i] = true
						break
					}
				}
			}
			reachable = reachable || row[i]
		}
		sp.finish = append(sp.finish, row)
		if !reachable {
			return false
		}
	}
	return true
}

func (sp *sampler) canFinish(set []int, remaining int) bool {
	for _, i := range set {
		if sp.finish[remaining][i] {
			return true
		}
	}
	return false
}

func (sp *sampler) stopped() bool {
	return len(sp.found) >= sp.limit || sp.budget <= 0
}

// collect appends, in lexicographic order, every accepted word of the
// given length that starts with prefix. set is the closure reached by prefix.
func (sp *sampler) collect(set []int, prefix string, remaining int) {
	if remaining == 0 {
		sp.found = append(sp.found, prefix)
		return
	}
	for _, sym := range sp.symbols {
		if sp.stopped() {
			return
		}
		sp.budget--
		next := sp.step(set, sym)
		if sp.canFinish(next, remaining-1) {
			sp.collect(next, prefix+sym, remaining-1)
		}
	}
}

// step returns the closure of the states reached from set on sym.
func (sp *sampler) step(set []int, sym string) []int {
	var dests []int
	for _, i := range set {
		for _, t := range sp.g.out[sp.g.states[i].Name] {
			if !t.Accepts(sym) {
				continue
			}
			if dest, ok := sp.g.index[t.To]; ok {
				dests = append(dests, dest)
			}
		}
	}
	return sp.closure(dests)
}

func (sp *sampler) closure(states []int) []int {
	var out []int
	for _, i := range states {
		out = append(out, sp.closures[i]...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
