package automata

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/analyzer"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

// Report is the aggregate result of Engine.Analyze.
type Report = analyzer.Report

// Engine is the high-level entry point for the automata library.
// It wraps the internal simulator and analyzer and adds logging and
// lifecycle hooks. An Engine holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	simulator *runtime.Simulator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to the simulator)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.simulator = runtime.NewSimulator(runtime.WithLogger(eng.logger))
	return eng
}

// Simulate runs word against the automaton snapshot. The empty word is ε.
// It never fails: missing initial states, stuck DFA walks and exhausted NFA
// searches are reported in the result.
func (e *Engine) Simulate(a domain.Automaton, word string) domain.SimulationResult {
	start := e.now()
	res, kind := e.simulator.Run(a, word)

	if e.hooks.OnSimulate != nil {
		e.hooks.OnSimulate(&domain.SimulationEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventSimulate},
			Kind:      kind,
			Word:      word,
			Accepted:  res.Accepted(),
			Steps:     len(res.SymbolsUsed()),
			Duration:  e.now().Sub(start),
		})
	}
	return res
}

// SimulateAll runs each word independently against the same snapshot.
func (e *Engine) SimulateAll(a domain.Automaton, words []string) []domain.SimulationResult {
	results := make([]domain.SimulationResult, 0, len(words))
	for _, w := range words {
		results = append(results, e.Simulate(a, w))
	}
	return results
}

// Sample returns up to limit accepted words, shortest first and then in
// alphabetical order, considering words of at most maxLen symbols.
// Sampling runs the simulator directly and does not fire hooks.
func (e *Engine) Sample(a domain.Automaton, limit, maxLen int) []string {
	return e.simulator.Sample(a, analyzer.Alphabet(a.Transitions), limit, maxLen)
}

// IsDeterministic reports whether the transition set has DFA semantics.
func (e *Engine) IsDeterministic(transitions []domain.Transition) bool {
	return runtime.IsDeterministic(transitions)
}

// Kind classifies the automaton as DFA or NFA.
func (e *Engine) Kind(a domain.Automaton) domain.Kind {
	return runtime.Classify(a.Transitions)
}

// EpsilonClosure returns the states reachable from the given ones through ε-transitions only.
func (e *Engine) EpsilonClosure(a domain.Automaton, from []domain.State) []domain.State {
	return runtime.EpsilonClosure(a, from)
}

// Alphabet returns the sorted non-ε symbols of the transition set.
func (e *Engine) Alphabet(transitions []domain.Transition) []string {
	return analyzer.Alphabet(transitions)
}

// IsComplete reports whether a DFA has a transition for every symbol out of every state.
func (e *Engine) IsComplete(a domain.Automaton) bool {
	return analyzer.IsComplete(a)
}

// UnreachableStates returns the states not reachable from the initial state.
func (e *Engine) UnreachableStates(a domain.Automaton) []domain.State {
	return analyzer.UnreachableStates(a)
}

// HasDeadStates reports whether any non-final state cannot reach a final state.
func (e *Engine) HasDeadStates(a domain.Automaton) bool {
	return analyzer.HasDeadStates(a)
}

// DeadStates returns the non-final states that cannot reach a final state.
func (e *Engine) DeadStates(a domain.Automaton) []domain.State {
	return analyzer.DeadStates(a)
}

// Validate returns the diagnostics for the automaton, in a fixed order.
func (e *Engine) Validate(a domain.Automaton) []string {
	return analyzer.Validate(a)
}

// Analyze runs every analysis and triggers the OnAnalyze hook.
func (e *Engine) Analyze(a domain.Automaton) Report {
	report := analyzer.Analyze(a)
	e.logger.Debug("automaton analyzed", "kind", report.Kind, "states", len(a.States), "diagnostics", len(report.Diagnostics))

	if e.hooks.OnAnalyze != nil {
		e.hooks.OnAnalyze(&domain.AnalysisEvent{
			EventBase:   domain.EventBase{Timestamp: e.now(), Type: domain.EventAnalyze},
			Kind:        report.Kind,
			States:      len(a.States),
			Diagnostics: len(report.Diagnostics),
		})
	}
	return report
}
