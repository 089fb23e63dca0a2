package analyzer_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/automata/internal/analyzer"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
)

var tr = domain.NewTransition

func names(states []domain.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Name
	}
	return out
}

func TestAlphabet(t *testing.T) {
	transitions := []domain.Transition{
		tr("q0", "q1", "b,a"),
		tr("q1", "q2", "ε"),
		tr("q2", "q0", ""),
		tr("q2", "q2", "c, a"),
	}
	assert.Equal(t, []string{"a", "b", "c"}, analyzer.Alphabet(transitions))
	assert.Empty(t, analyzer.Alphabet(nil))
}

func TestIsComplete(t *testing.T) {
	states := []domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}}

	tests := []struct {
		name        string
		states      []domain.State
		transitions []domain.Transition
		want        bool
	}{
		{
			name:        "Empty Alphabet Is Vacuously Complete",
			states:      states,
			transitions: nil,
			want:        true,
		},
		{
			name:   "Total DFA",
			states: states,
			transitions: []domain.Transition{
				tr("q0", "q1", "a"), tr("q0", "q0", "b"),
				tr("q1", "q1", "a,b"),
			},
			want: true,
		},
		{
			name:   "Missing Symbol",
			states: states,
			transitions: []domain.Transition{
				tr("q0", "q1", "a"), tr("q0", "q0", "b"),
				tr("q1", "q1", "a"),
			},
			want: false,
		},
		{
			name:   "State Without Transitions",
			states: append(states, domain.State{Name: "q2"}),
			transitions: []domain.Transition{
				tr("q0", "q1", "a"), tr("q1", "q1", "a"),
			},
			want: false,
		},
		{
			name:   "NFA With Full Coverage Is Not Complete",
			states: states,
			transitions: []domain.Transition{
				tr("q0", "q1", "a"), tr("q0", "q0", "a"),
				tr("q1", "q1", "a"),
			},
			want: false,
		},
		{
			name:   "Epsilon Makes It Incomplete",
			states: states,
			transitions: []domain.Transition{
				tr("q0", "q1", "a"), tr("q1", "q1", "a"), tr("q0", "q1", "ε"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.NewAutomaton(tt.states, tt.transitions)
			assert.Equal(t, tt.want, analyzer.IsComplete(a))
		})
	}
}

func TestUnreachableStates(t *testing.T) {
	t.Run("No Initial State Means Everything", func(t *testing.T) {
		a := domain.NewAutomaton(
			[]domain.State{{Name: "q0"}, {Name: "q1"}},
			[]domain.Transition{tr("q0", "q1", "a")},
		)
		assert.Equal(t, []string{"q0", "q1"}, names(analyzer.UnreachableStates(a)))
	})

	t.Run("Follows Epsilon And Consuming Edges", func(t *testing.T) {
		a := domain.NewAutomaton(
			[]domain.State{{Name: "q0", Initial: true}, {Name: "q1"}, {Name: "q2"}, {Name: "island"}, {Name: "q3"}},
			[]domain.Transition{
				tr("q0", "q1", "ε"),
				tr("q1", "q2", "a"),
				tr("island", "q3", "a"),
			},
		)
		assert.Equal(t, []string{"island", "q3"}, names(analyzer.UnreachableStates(a)))
	})

	t.Run("Direction Matters", func(t *testing.T) {
		a := domain.NewAutomaton(
			[]domain.State{{Name: "q0", Initial: true}, {Name: "q1"}},
			[]domain.Transition{tr("q1", "q0", "a")},
		)
		assert.Equal(t, []string{"q1"}, names(analyzer.UnreachableStates(a)))
	})

	t.Run("Missing States Are Not Crossed", func(t *testing.T) {
		a := domain.NewAutomaton(
			[]domain.State{{Name: "q0", Initial: true}, {Name: "q2", Final: true}},
			[]domain.Transition{tr("q0", "ghost", "a"), tr("ghost", "q2", "a")},
		)
		assert.Equal(t, []string{"q2"}, names(analyzer.UnreachableStates(a)))
	})
}

func TestDeadStates(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}, {Name: "trap"}, {Name: "loop"}},
		[]domain.Transition{
			tr("q0", "q1", "a"),
			tr("q0", "trap", "b"),
			tr("trap", "trap", "a,b"),
			tr("loop", "loop", "a"),
		},
	)
	assert.Equal(t, []string{"trap", "loop"}, names(analyzer.DeadStates(a)))
	assert.True(t, analyzer.HasDeadStates(a))

	alive := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}},
		[]domain.Transition{tr("q0", "q1", "a"), tr("q1", "q0", "a")},
	)
	assert.False(t, analyzer.HasDeadStates(alive))

	noFinal := domain.NewAutomaton([]domain.State{{Name: "q0", Initial: true}}, nil)
	assert.True(t, analyzer.HasDeadStates(noFinal))

	throughGhost := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q2", Final: true}},
		[]domain.Transition{tr("q0", "ghost", "a"), tr("ghost", "q2", "a")},
	)
	assert.Equal(t, []string{"q0"}, names(analyzer.DeadStates(throughGhost)))
}

func TestValidate(t *testing.T) {
	t.Run("Empty Automaton", func(t *testing.T) {
		diags := analyzer.Validate(domain.Automaton{})
		assert.Equal(t, []string{analyzer.MsgNoStates}, diags)
	})

	t.Run("Well Formed", func(t *testing.T) {
		a := domain.NewAutomaton(
			[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}},
			[]domain.Transition{tr("q0", "q1", "a")},
		)
		assert.Empty(t, analyzer.Validate(a))
	})

	t.Run("Every Diagnostic In Order", func(t *testing.T) {
		a := domain.NewAutomaton(
			[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Initial: true}, {Name: "q2"}},
			[]domain.Transition{tr("q0", "q1", "a"), tr("q1", "ghost", "b")},
		)
		assert.Equal(t, []string{
			fmt.Sprintf(analyzer.MsgMultipleInitial, "q0, q1"),
			analyzer.MsgNoFinalState,
			fmt.Sprintf(analyzer.MsgUnreachable, "q2"),
			fmt.Sprintf(analyzer.MsgDeadStates, "q0, q1, q2"),
			fmt.Sprintf(analyzer.MsgDanglingEndpoint, "q1", "ghost", "ghost"),
		}, analyzer.Validate(a))
	})

	t.Run("Dead States Only Reported For DFA", func(t *testing.T) {
		a := domain.NewAutomaton(
			[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}, {Name: "trap"}},
			[]domain.Transition{tr("q0", "q1", "a"), tr("q0", "trap", "a")},
		)
		assert.Empty(t, analyzer.Validate(a))
	})
}

func TestAnalyze(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}, {Name: "q2"}},
		[]domain.Transition{tr("q0", "q1", "a,b"), tr("q1", "q1", "a,b")},
	)

	report := analyzer.Analyze(a)
	assert.Equal(t, domain.KindDFA, report.Kind)
	assert.Equal(t, []string{"a", "b"}, report.Alphabet)
	assert.False(t, report.Complete, "q2 has no outgoing transitions")
	assert.Equal(t, []string{"q2"}, report.Unreachable)
	assert.Equal(t, []string{"q2"}, report.DeadStates)
	assert.Len(t, report.Diagnostics, 2)
	assert.Equal(t, analyzer.Summary{States: 3, Transitions: 2, InitialStates: 1, FinalStates: 1}, report.Summary)
}

func TestSummarize_CountsEpsilonTransitions(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Initial: true, Final: true}},
		[]domain.Transition{tr("q0", "q1", ""), tr("q0", "q1", "ε"), tr("q1", "q0", "a")},
	)
	sum := analyzer.Summarize(a)
	assert.Equal(t, 2, sum.InitialStates)
	assert.Equal(t, 1, sum.FinalStates)
	assert.Equal(t, 2, sum.EpsilonTransitions)
}
