package analyzer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

// Diagnostic messages returned by Validate.
const (
	MsgNoStates         = "automaton has no states"
	MsgNoInitialState   = "no initial state defined"
	MsgMultipleInitial  = "more than one initial state (%s): characteristic of NFA"
	MsgNoFinalState     = "no final state defined"
	MsgUnreachable      = "unreachable states: %s"
	MsgDeadStates       = "dead states (no final state reachable): %s"
	MsgDanglingEndpoint = "transition %s -> %s references unknown state %s"
)

// Report aggregates every analysis of a snapshot.
type Report struct {
	Kind        domain.Kind `json:"kind"`
	Summary     Summary     `json:"summary"`
	Alphabet    []string    `json:"alphabet"`
	Complete    bool        `json:"complete"`
	Unreachable []string    `json:"unreachable"`
	DeadStates  []string    `json:"dead_states"`
	Diagnostics []string    `json:"diagnostics"`
}

// Summary counts the elements of a snapshot.
type Summary struct {
	States             int `json:"states"`
	Transitions        int `json:"transitions"`
	InitialStates      int `json:"initial_states"`
	FinalStates        int `json:"final_states"`
	EpsilonTransitions int `json:"epsilon_transitions"`
}

// Summarize counts states, transitions and flags.
func Summarize(a domain.Automaton) Summary {
	sum := Summary{
		States:        len(a.States),
		Transitions:   len(a.Transitions),
		InitialStates: len(a.InitialStates()),
		FinalStates:   len(a.FinalStates()),
	}
	for _, t := range a.Transitions {
		if t.IsEpsilon() {
			sum.EpsilonTransitions++
		}
	}
	return sum
}

// Alphabet returns every non-ε symbol on any transition, sorted.
func Alphabet(transitions []domain.Transition) []string {
	seen := make(map[string]struct{})
	for _, t := range transitions {
		for _, sym := range t.Symbols() {
			if sym == domain.Epsilon {
				continue
			}
			seen[sym] = struct{}{}
		}
	}

	alphabet := make([]string, 0, len(seen))
	for sym := range seen {
		alphabet = append(alphabet, sym)
	}
	slices.Sort(alphabet)
	return alphabet
}

// IsComplete reports whether a deterministic automaton has a transition
// for every alphabet symbol out of every state.
// It is false for any non-deterministic transition set, and vacuously true
// for an empty alphabet.
func IsComplete(a domain.Automaton) bool {
	if !runtime.IsDeterministic(a.Transitions) {
		return false
	}
	alphabet := Alphabet(a.Transitions)
	if len(alphabet) == 0 {
		return true
	}

	covered := make(map[string]map[string]struct{}, len(a.States))
	for _, t := range a.Transitions {
		if covered[t.From] == nil {
			covered[t.From] = make(map[string]struct{})
		}
		for _, sym := range t.Symbols() {
			covered[t.From][sym] = struct{}{}
		}
	}

	for _, s := range a.States {
		for _, sym := range alphabet {
			if _, ok := covered[s.Name][sym]; !ok {
				return false
			}
		}
	}
	return true
}

// UnreachableStates returns the states not reachable from the first initial
// state along any transition, in snapshot order. Without an initial state
// every state is unreachable.
func UnreachableStates(a domain.Automaton) []domain.State {
	initial, ok := a.Initial()
	if !ok {
		return append([]domain.State(nil), a.States...)
	}

	visited := forward(a, []string{initial.Name})

	var unreachable []domain.State
	for _, s := range a.States {
		if !visited[s.Name] {
			unreachable = append(unreachable, s)
		}
	}
	return unreachable
}

// DeadStates returns the non-final states from which no final state can be
// reached, in snapshot order.
func DeadStates(a domain.Automaton) []domain.State {
	// A state is live if it reaches a final state; crawl backwards from the finals.
	reverse := make(map[string][]string, len(a.States))
	for _, t := range followable(a) {
		reverse[t.To] = append(reverse[t.To], t.From)
	}

	var queue []string
	live := make(map[string]bool)
	for _, s := range a.FinalStates() {
		if !live[s.Name] {
			live[s.Name] = true
			queue = append(queue, s.Name)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, prev := range reverse[current] {
			if !live[prev] {
				live[prev] = true
				queue = append(queue, prev)
			}
		}
	}

	var dead []domain.State
	for _, s := range a.States {
		if !s.Final && !live[s.Name] {
			dead = append(dead, s)
		}
	}
	return dead
}

// HasDeadStates reports whether any non-final state cannot reach a final state.
func HasDeadStates(a domain.Automaton) bool {
	return len(DeadStates(a)) > 0
}

// Validate returns human-readable diagnostics, in a fixed order.
// Diagnostics never prevent simulation.
func Validate(a domain.Automaton) []string {
	diags := []string{}

	if len(a.States) == 0 {
		return append(diags, MsgNoStates)
	}

	initials := a.InitialStates()
	switch {
	case len(initials) == 0:
		diags = append(diags, MsgNoInitialState)
	case len(initials) > 1:
		diags = append(diags, fmt.Sprintf(MsgMultipleInitial, joinNames(initials)))
	}

	if len(a.FinalStates()) == 0 {
		diags = append(diags, MsgNoFinalState)
	}

	if unreachable := UnreachableStates(a); len(unreachable) > 0 {
		diags = append(diags, fmt.Sprintf(MsgUnreachable, joinNames(unreachable)))
	}

	if runtime.IsDeterministic(a.Transitions) {
		if dead := DeadStates(a); len(dead) > 0 {
			diags = append(diags, fmt.Sprintf(MsgDeadStates, joinNames(dead)))
		}
	}

	idx := a.Index()
	for _, t := range a.Transitions {
		for _, end := range []string{t.From, t.To} {
			if _, ok := idx[end]; !ok {
				diags = append(diags, fmt.Sprintf(MsgDanglingEndpoint, t.From, t.To, end))
				break
			}
		}
	}

	return diags
}

// Analyze runs every analysis and aggregates the results.
func Analyze(a domain.Automaton) Report {
	return Report{
		Kind:        runtime.Classify(a.Transitions),
		Summary:     Summarize(a),
		Alphabet:    Alphabet(a.Transitions),
		Complete:    IsComplete(a),
		Unreachable: stateNames(UnreachableStates(a)),
		DeadStates:  stateNames(DeadStates(a)),
		Diagnostics: Validate(a),
	}
}

// forward crawls from the given states along every transition, ε or not.
func forward(a domain.Automaton, start []string) map[string]bool {
	out := make(map[string][]string, len(a.States))
	for _, t := range followable(a) {
		out[t.From] = append(out[t.From], t.To)
	}

	visited := make(map[string]bool)
	queue := append([]string(nil), start...)

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		for _, target := range out[currentID] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}
	return visited
}

// followable drops transitions with an endpoint missing from the snapshot.
// Crawls never pass through a state that does not exist.
func followable(a domain.Automaton) []domain.Transition {
	idx := a.Index()
	var out []domain.Transition
	for _, t := range a.Transitions {
		_, okFrom := idx[t.From]
		_, okTo := idx[t.To]
		if okFrom && okTo {
			out = append(out, t)
		}
	}
	return out
}

func stateNames(states []domain.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Name
	}
	return out
}

func joinNames(states []domain.State) string {
	return strings.Join(stateNames(states), ", ")
}
