package runtime

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// Verdict messages. Messages that name a state or symbol are format strings.
const (
	MsgNoInitialState = "no initial state defined"
	MsgDFAAccepted    = "accepted: word '%s' ended in final state %s"
	MsgDFARejected    = "rejected: ended in non-final state %s"
	MsgDFAStuck       = "rejected: no transition from state %s on symbol '%s'"
	MsgNFAAccepted    = "accepted by NFA: word '%s' ended in final state %s"
	MsgNFARejected    = "rejected by NFA: no path consumes '%s' and ends in a final state"
)

// Simulator runs words against automaton snapshots.
// It holds no mutable state, so one Simulator may serve concurrent callers.
type Simulator struct {
	logger *slog.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the structured logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSimulator creates a simulator.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate runs word against the automaton and returns the verdict and trace.
// The empty word is ε.
func (s *Simulator) Simulate(a domain.Automaton, word string) domain.SimulationResult {
	res, _ := s.Run(a, word)
	return res
}

// Run is Simulate that also reports which algorithm was used.
func (s *Simulator) Run(a domain.Automaton, word string) (domain.SimulationResult, domain.Kind) {
	initial, ok := a.Initial()
	if !ok {
		s.logger.Debug("simulation aborted", "reason", MsgNoInitialState, "word", word)
		return domain.NewSimulationResult(false, nil, nil, word, MsgNoInitialState), Classify(a.Transitions)
	}

	g := newGraph(a)
	kind := Classify(a.Transitions)
	s.logger.Debug("simulation dispatched", "kind", kind, "word", word, "initial", initial.Name)

	var res domain.SimulationResult
	if kind == domain.KindDFA {
		res = s.runDFA(g, initial, word)
	} else {
		res = s.runNFA(g, initial, word)
	}

	s.logger.Debug("simulation finished", "kind", kind, "word", word, "accepted", res.Accepted(), "steps", len(res.SymbolsUsed()))
	return res, kind
}

func (s *Simulator) runDFA(g *graph, initial domain.State, word string) domain.SimulationResult {
	current := initial
	path := []domain.State{initial}
	var symbols []string

	for _, r := range word {
		sym := string(r)
		next, ok := g.firstMatch(current.Name, sym)
		if !ok {
			return domain.NewSimulationResult(false, path, symbols, word,
				fmt.Sprintf(MsgDFAStuck, current.Name, sym))
		}
		current = next
		path = append(path, next)
		symbols = append(symbols, sym)
	}

	if current.Final {
		return domain.NewSimulationResult(true, path, symbols, word,
			fmt.Sprintf(MsgDFAAccepted, domain.RenderWord(word), current.Name))
	}
	return domain.NewSimulationResult(false, path, symbols, word,
		fmt.Sprintf(MsgDFARejected, current.Name))
}

// firstMatch returns the destination of the first consuming transition,
// in snapshot order, leaving from and accepting sym.
func (g *graph) firstMatch(from, sym string) (domain.State, bool) {
	for _, t := range g.out[from] {
		if !t.Accepts(sym) {
			continue
		}
		if dest, ok := g.state(t.To); ok {
			return dest, true
		}
	}
	return domain.State{}, false
}

// configuration is a node of the NFA breadth-first search.
type configuration struct {
	state   domain.State
	pos     int
	path    []domain.State
	symbols []string
}

type visitKey struct {
	state string
	pos   int
}

func (s *Simulator) runNFA(g *graph, initial domain.State, word string) domain.SimulationResult {
	input := []rune(word)

	var queue []configuration
	for _, member := range g.closure([]domain.State{initial}) {
		if member.Name == initial.Name {
			queue = append(queue, configuration{state: member, path: []domain.State{initial}})
			continue
		}
		queue = append(queue, configuration{
			state:   member,
			path:    []domain.State{initial, member},
			symbols: []string{domain.Epsilon},
		})
	}

	visited := make(map[visitKey]struct{})
	expanded, enqueued := 0, len(queue)

	for len(queue) > 0 {
		cfg := queue[0]
		queue = queue[1:]

		key := visitKey{state: cfg.state.Name, pos: cfg.pos}
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}
		expanded++

		if cfg.pos >= len(input) && cfg.state.Final {
			s.logger.Debug("nfa search accepted", "expanded", expanded, "enqueued", enqueued, "state", cfg.state.Name)
			return domain.NewSimulationResult(true, cfg.path, cfg.symbols, word,
				fmt.Sprintf(MsgNFAAccepted, domain.RenderWord(word), cfg.state.Name))
		}

		// At the end of the word the closure is already queued.
		if cfg.pos >= len(input) {
			continue
		}
		next := append(g.consume(cfg, string(input[cfg.pos])), g.epsilonMoves(cfg)...)
		enqueued += len(next)
		queue = append(queue, next...)
	}

	s.logger.Debug("nfa search exhausted", "expanded", expanded, "enqueued", enqueued, "word", word)
	path, symbols := g.greedyPath(initial, input)
	return domain.NewSimulationResult(false, path, symbols, word,
		fmt.Sprintf(MsgNFARejected, domain.RenderWord(word)))
}

// consume expands every transition accepting sym out of cfg's state, then
// the ε-closure of each destination.
func (g *graph) consume(cfg configuration, sym string) []configuration {
	var next []configuration
	for _, t := range g.out[cfg.state.Name] {
		if !t.Accepts(sym) {
			continue
		}
		dest, ok := g.state(t.To)
		if !ok {
			continue
		}
		for _, member := range g.closure([]domain.State{dest}) {
			if member.Name == dest.Name {
				next = append(next, configuration{
					state:   member,
					pos:     cfg.pos + 1,
					path:    extend(cfg.path, dest),
					symbols: extend(cfg.symbols, sym),
				})
				continue
			}
			next = append(next, configuration{
				state:   member,
				pos:     cfg.pos + 1,
				path:    extend(cfg.path, dest, member),
				symbols: extend(cfg.symbols, sym, domain.Epsilon),
			})
		}
	}
	return next
}

// epsilonMoves follows each ε-transition out of cfg's state without
// consuming input, so ε-moves interleave with consumption at any point.
func (g *graph) epsilonMoves(cfg configuration) []configuration {
	var next []configuration
	for _, t := range g.out[cfg.state.Name] {
		if !t.IsEpsilon() {
			continue
		}
		dest, ok := g.state(t.To)
		if !ok {
			continue
		}
		next = append(next, configuration{
			state:   dest,
			pos:     cfg.pos,
			path:    extend(cfg.path, dest),
			symbols: extend(cfg.symbols, domain.Epsilon),
		})
	}
	return next
}

// greedyPath follows the first matching consuming transition per symbol.
// It only feeds diagnostics after a rejection.
func (g *graph) greedyPath(initial domain.State, input []rune) ([]domain.State, []string) {
	current := initial
	path := []domain.State{initial}
	var symbols []string

	for _, r := range input {
		sym := string(r)
		next, ok := g.firstMatch(current.Name, sym)
		if !ok {
			break
		}
		current = next
		path = append(path, next)
		symbols = append(symbols, sym)
	}
	return path, symbols
}
