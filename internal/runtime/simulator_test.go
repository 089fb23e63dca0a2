package runtime_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(states []domain.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Name
	}
	return out
}

func singleEdge() domain.Automaton {
	return domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}},
		[]domain.Transition{domain.NewTransition("q0", "q1", "a")},
	)
}

func TestSimulate_DFA_SingleEdge(t *testing.T) {
	sim := runtime.NewSimulator()

	t.Run("Accepted", func(t *testing.T) {
		res := sim.Simulate(singleEdge(), "a")
		assert.True(t, res.Accepted())
		assert.Equal(t, []string{"q0", "q1"}, names(res.Path()))
		assert.Equal(t, []string{"a"}, res.SymbolsUsed())
		assert.Equal(t, "a", res.Word())
		assert.Contains(t, res.Message(), "accepted")
	})

	t.Run("Stuck", func(t *testing.T) {
		res := sim.Simulate(singleEdge(), "b")
		assert.False(t, res.Accepted())
		assert.Equal(t, []string{"q0"}, names(res.Path()))
		assert.Empty(t, res.SymbolsUsed())
		assert.Equal(t, fmt.Sprintf(runtime.MsgDFAStuck, "q0", "b"), res.Message())
	})

	t.Run("Ends In Non-Final", func(t *testing.T) {
		res := sim.Simulate(singleEdge(), "")
		assert.False(t, res.Accepted())
		assert.Equal(t, []string{"q0"}, names(res.Path()))
		assert.Equal(t, fmt.Sprintf(runtime.MsgDFARejected, "q0"), res.Message())
	})

	t.Run("Stuck Mid-Word Keeps Partial Path", func(t *testing.T) {
		res := sim.Simulate(singleEdge(), "aa")
		assert.False(t, res.Accepted())
		assert.Equal(t, []string{"q0", "q1"}, names(res.Path()))
		assert.Equal(t, []string{"a"}, res.SymbolsUsed())
		assert.Equal(t, fmt.Sprintf(runtime.MsgDFAStuck, "q1", "a"), res.Message())
	})
}

func TestSimulate_NoInitialState(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Final: true}},
		nil,
	)
	res := runtime.NewSimulator().Simulate(a, "a")
	assert.False(t, res.Accepted())
	assert.Empty(t, res.Path())
	assert.Equal(t, runtime.MsgNoInitialState, res.Message())
}

func TestSimulate_EmptyWordOnInitialFinal(t *testing.T) {
	a := domain.NewAutomaton([]domain.State{{Name: "q0", Initial: true, Final: true}}, nil)

	res, kind := runtime.NewSimulator().Run(a, "")
	assert.Equal(t, domain.KindDFA, kind)
	assert.True(t, res.Accepted())
	assert.Equal(t, []string{"q0"}, names(res.Path()))
	assert.Contains(t, res.Message(), domain.Epsilon)
}

func TestSimulate_FirstInitialWins(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0"}, {Name: "q1", Initial: true}, {Name: "q2", Initial: true, Final: true}},
		nil,
	)
	res := runtime.NewSimulator().Simulate(a, "")
	assert.False(t, res.Accepted(), "q1 is the first initial state and is not final")
	assert.Equal(t, []string{"q1"}, names(res.Path()))
}

func TestSimulate_DFA_ParallelEdgesStayDeterministic(t *testing.T) {
	// Two parallel edges to the same destination keep the set deterministic.
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}},
		[]domain.Transition{
			domain.NewTransition("q0", "q1", "a,b"),
			domain.NewTransition("q0", "q1", "a"),
		},
	)
	res, kind := runtime.NewSimulator().Run(a, "ab")
	assert.Equal(t, domain.KindDFA, kind)
	assert.False(t, res.Accepted())
	assert.Equal(t, fmt.Sprintf(runtime.MsgDFAStuck, "q1", "b"), res.Message())
}

func TestSimulate_MultiSymbolEdges(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true, Final: true}},
		[]domain.Transition{domain.NewTransition("q0", "q0", "a, b ,c")},
	)
	res := runtime.NewSimulator().Simulate(a, "abcacb")
	assert.True(t, res.Accepted())
	assert.Len(t, res.Path(), 7)
	assert.Equal(t, []string{"a", "b", "c", "a", "c", "b"}, res.SymbolsUsed())
}

func TestSimulate_UnicodeSymbols(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}},
		[]domain.Transition{domain.NewTransition("q0", "q1", "ä")},
	)
	res := runtime.NewSimulator().Simulate(a, "ä")
	assert.True(t, res.Accepted())
	assert.Equal(t, []string{"ä"}, res.SymbolsUsed())
}

func TestSimulate_NFA_EpsilonHop(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1"}, {Name: "q2", Final: true}},
		[]domain.Transition{
			domain.NewTransition("q0", "q1", domain.Epsilon),
			domain.NewTransition("q1", "q2", "a"),
		},
	)

	res, kind := runtime.NewSimulator().Run(a, "a")
	require.Equal(t, domain.KindNFA, kind)
	assert.True(t, res.Accepted())
	assert.Equal(t, []string{"q0", "q1", "q2"}, names(res.Path()))
	assert.Equal(t, []string{domain.Epsilon, "a"}, res.SymbolsUsed())
	assert.Contains(t, res.Message(), "accepted by NFA")
}

func TestSimulate_NFA_CompetingPaths(t *testing.T) {
	// q0 --a--> dead (non-final, no exit); q0 --a--> q1 --b--> q2 (final).
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "dead"}, {Name: "q1"}, {Name: "q2", Final: true}},
		[]domain.Transition{
			domain.NewTransition("q0", "dead", "a"),
			domain.NewTransition("q0", "q1", "a"),
			domain.NewTransition("q1", "q2", "b"),
		},
	)

	res, kind := runtime.NewSimulator().Run(a, "ab")
	require.Equal(t, domain.KindNFA, kind)
	assert.True(t, res.Accepted())
	assert.Equal(t, []string{"q0", "q1", "q2"}, names(res.Path()))
	assert.Equal(t, []string{"a", "b"}, res.SymbolsUsed())
}

func TestSimulate_NFA_Rejection(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1"}, {Name: "q2", Final: true}},
		[]domain.Transition{
			domain.NewTransition("q0", "q1", "a"),
			domain.NewTransition("q0", "q2", "a"),
			domain.NewTransition("q1", "q1", "b"),
		},
	)

	res := runtime.NewSimulator().Simulate(a, "abb")
	assert.False(t, res.Accepted())
	assert.Contains(t, res.Message(), "rejected by NFA")
	// Greedy partial path follows the first matching edge per symbol.
	assert.Equal(t, []string{"q0", "q1", "q1", "q1"}, names(res.Path()))
	assert.Equal(t, []string{"a", "b", "b"}, res.SymbolsUsed())
}

func TestSimulate_NFA_EpsilonCycleTerminates(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1"}, {Name: "q2"}},
		[]domain.Transition{
			domain.NewTransition("q0", "q1", ""),
			domain.NewTransition("q1", "q2", "ε"),
			domain.NewTransition("q2", "q0", "ε"),
			domain.NewTransition("q1", "q1", "a"),
		},
	)

	res := runtime.NewSimulator().Simulate(a, "aaaa")
	assert.False(t, res.Accepted())
	assert.Contains(t, res.Message(), "rejected by NFA")
}

func TestSimulate_NFA_EpsilonAfterConsumption(t *testing.T) {
	// Word is exhausted in q1; only an ε-move reaches the final state.
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1"}, {Name: "q2"}, {Name: "q3", Final: true}},
		[]domain.Transition{
			domain.NewTransition("q0", "q1", "a"),
			domain.NewTransition("q1", "q2", "ε"),
			domain.NewTransition("q2", "q3", "ε"),
		},
	)

	res := runtime.NewSimulator().Simulate(a, "a")
	assert.True(t, res.Accepted())
	assert.Equal(t, "q3", res.Path()[len(res.Path())-1].Name)
	assert.Equal(t, "a", res.SymbolsUsed()[0])
}

func TestSimulate_IgnoresTransitionsToMissingStates(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}},
		[]domain.Transition{
			domain.NewTransition("q0", "ghost", "a"),
			domain.NewTransition("q0", "q1", "a"),
		},
	)

	res := runtime.NewSimulator().Simulate(a, "a")
	assert.True(t, res.Accepted())
	assert.Equal(t, []string{"q0", "q1"}, names(res.Path()))
}

func TestSimulate_DoesNotMutateSnapshot(t *testing.T) {
	a := singleEdge()
	before := a.Clone()
	_ = runtime.NewSimulator().Simulate(a, "a")
	assert.Equal(t, before, a)
}

func TestSimulate_LogsDispatch(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	runtime.NewSimulator(runtime.WithLogger(logger)).Simulate(singleEdge(), "a")
	assert.Contains(t, buf.String(), "simulation dispatched")
	assert.Contains(t, buf.String(), "kind=DFA")
}

func TestSimulate_NFAStopsAtEndOfWord(t *testing.T) {
	// q0 -ε-> q1 -ε-> q2, nothing final: the initial closure is the whole search.
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1"}, {Name: "q2"}},
		[]domain.Transition{
			domain.NewTransition("q0", "q1", "ε"),
			domain.NewTransition("q1", "q2", "ε"),
		},
	)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res := runtime.NewSimulator(runtime.WithLogger(logger)).Simulate(a, "")
	assert.False(t, res.Accepted())
	assert.Contains(t, buf.String(), "expanded=3 enqueued=3")
}

// deltaStar follows a total or partial DFA transition table to completion.
func deltaStar(table map[string]map[string]string, finals map[string]bool, start, word string) bool {
	cur := start
	for _, r := range word {
		next, ok := table[cur][string(r)]
		if !ok {
			return false
		}
		cur = next
	}
	return finals[cur]
}

func TestSimulate_DFA_MatchesTransitionFunction(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"a", "b", "c"}

	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(5)
		states := make([]domain.State, n)
		finals := make(map[string]bool)
		for i := range states {
			states[i] = domain.State{Name: fmt.Sprintf("q%d", i), Initial: i == 0, Final: rng.Intn(2) == 0}
			finals[states[i].Name] = states[i].Final
		}

		table := make(map[string]map[string]string)
		var transitions []domain.Transition
		for _, s := range states {
			table[s.Name] = make(map[string]string)
			for _, sym := range alphabet {
				if rng.Intn(4) == 0 {
					continue // leave partial
				}
				to := states[rng.Intn(n)].Name
				table[s.Name][sym] = to
				transitions = append(transitions, domain.NewTransition(s.Name, to, sym))
			}
		}

		a := domain.NewAutomaton(states, transitions)
		require.True(t, runtime.IsDeterministic(a.Transitions))

		sim := runtime.NewSimulator()
		for w := 0; w < 20; w++ {
			length := rng.Intn(6)
			word := ""
			for i := 0; i < length; i++ {
				word += alphabet[rng.Intn(len(alphabet))]
			}
			res := sim.Simulate(a, word)
			assert.Equal(t, deltaStar(table, finals, "q0", word), res.Accepted(), "round %d word %q", round, word)
		}
	}
}
