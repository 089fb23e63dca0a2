package ports

import (
	"github.com/aretw0/automata/internal/analyzer"
	"github.com/aretw0/automata/pkg/domain"
)

// Engine is the simulation and analysis surface used by driving adapters
// (HTTP, MCP, CLI). *automata.Engine implements it.
type Engine interface {
	// Simulate runs a word against a snapshot. It never fails; problems are
	// reported in the result message.
	Simulate(a domain.Automaton, word string) domain.SimulationResult

	// SimulateAll runs each word independently.
	SimulateAll(a domain.Automaton, words []string) []domain.SimulationResult

	// Kind classifies the snapshot as DFA or NFA.
	Kind(a domain.Automaton) domain.Kind

	// Analyze runs every static analysis of the snapshot.
	Analyze(a domain.Automaton) analyzer.Report

	// Sample lists accepted words, shortest first.
	Sample(a domain.Automaton, limit, maxLen int) []string
}
