/*
Package automata simulates and analyzes finite automata (DFA and NFA).

An automaton is an immutable snapshot of named states and labelled
transitions. The engine classifies it, runs words against it and reports
structural problems, without ever mutating the snapshot it was given.

# Concept

Editing tools (the CLI, the HTTP API, an MCP client) own a mutable
workspace and hand the engine a domain.Automaton each time they need an
answer. The engine picks the execution mode from the transitions alone:
a transition set with no ε-moves and at most one destination per
(state, symbol) pair is walked as a DFA; anything else is searched
breadth-first as an NFA.

# Key Features

  - Deterministic Dispatch: classification depends only on the transition set.
  - Traceable Results: every verdict carries the state path, the symbols used and a message.
  - Static Analysis: alphabet, completeness, unreachable and dead states, ordered diagnostics.
  - Lifecycle Hooks: simulation and analysis events for metrics and logging.

# Usage

	package main

	import (
		"fmt"

		"github.com/aretw0/automata"
		"github.com/aretw0/automata/pkg/domain"
	)

	func main() {
		a := domain.NewAutomaton(
			[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}},
			[]domain.Transition{domain.NewTransition("q0", "q1", "a")},
		)

		eng := automata.New()
		res := eng.Simulate(a, "a")
		fmt.Println(res.Accepted(), res.Message())

		for _, diag := range eng.Validate(a) {
			fmt.Println("warning:", diag)
		}
	}
*/
package automata
