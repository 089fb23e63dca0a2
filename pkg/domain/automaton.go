package domain

// Automaton is a snapshot of states and transitions, in editor order.
// Order matters: the first initial state wins and the DFA walk takes the
// first matching transition.
type Automaton struct {
	States      []State      `json:"states" yaml:"states"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`
}

// NewAutomaton copies the given collections into a snapshot so later
// mutations by the caller are not observed.
func NewAutomaton(states []State, transitions []Transition) Automaton {
	return Automaton{
		States:      append([]State(nil), states...),
		Transitions: append([]Transition(nil), transitions...),
	}
}

// Clone returns a deep copy of the snapshot.
func (a Automaton) Clone() Automaton {
	return NewAutomaton(a.States, a.Transitions)
}

// Initial returns the first state flagged initial.
func (a Automaton) Initial() (State, bool) {
	for _, s := range a.States {
		if s.Initial {
			return s, true
		}
	}
	return State{}, false
}

// InitialStates returns every state flagged initial.
func (a Automaton) InitialStates() []State {
	var res []State
	for _, s := range a.States {
		if s.Initial {
			res = append(res, s)
		}
	}
	return res
}

// FinalStates returns every state flagged final.
func (a Automaton) FinalStates() []State {
	var res []State
	for _, s := range a.States {
		if s.Final {
			res = append(res, s)
		}
	}
	return res
}

// Index maps state names to their position in States.
// Later duplicates do not override the first occurrence.
func (a Automaton) Index() map[string]int {
	idx := make(map[string]int, len(a.States))
	for i, s := range a.States {
		if _, ok := idx[s.Name]; !ok {
			idx[s.Name] = i
		}
	}
	return idx
}

// State looks a state up by name.
func (a Automaton) State(name string) (State, bool) {
	for _, s := range a.States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

// Outgoing returns the transitions leaving the named state, in order.
func (a Automaton) Outgoing(name string) []Transition {
	var res []Transition
	for _, t := range a.Transitions {
		if t.From == name {
			res = append(res, t)
		}
	}
	return res
}
