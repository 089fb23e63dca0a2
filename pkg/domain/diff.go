package domain

// AutomatonDiff represents the changes between two automaton snapshots.
// It is designed to be serialized to JSON so a drawing layer can redraw
// only what changed.
type AutomatonDiff struct {
	AddedStates   []string `json:"added_states,omitempty"`
	RemovedStates []string `json:"removed_states,omitempty"`

	// ChangedStates holds states whose flags or position differ.
	ChangedStates []State `json:"changed_states,omitempty"`

	AddedTransitions   []Transition `json:"added_transitions,omitempty"`
	RemovedTransitions []Transition `json:"removed_transitions,omitempty"`
}

// Diff calculates the difference between oldA and newA.
// If oldA is nil, it returns a diff representing the entire newA (initial load).
// It returns nil when nothing changed.
func Diff(oldA, newA *Automaton) *AutomatonDiff {
	if newA == nil {
		return nil
	}
	if oldA == nil {
		oldA = &Automaton{}
	}

	diff := &AutomatonDiff{}
	diffStates(oldA, newA, diff)
	diffTransitions(oldA, newA, diff)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffStates(oldA, newA *Automaton, diff *AutomatonDiff) {
	before := make(map[string]State, len(oldA.States))
	for _, s := range oldA.States {
		before[s.Name] = s
	}
	after := make(map[string]struct{}, len(newA.States))

	for _, s := range newA.States {
		after[s.Name] = struct{}{}
		prev, exists := before[s.Name]
		if !exists {
			diff.AddedStates = append(diff.AddedStates, s.Name)
			continue
		}
		if prev != s {
			diff.ChangedStates = append(diff.ChangedStates, s)
		}
	}

	for _, s := range oldA.States {
		if _, exists := after[s.Name]; !exists {
			diff.RemovedStates = append(diff.RemovedStates, s.Name)
		}
	}
}

func diffTransitions(oldA, newA *Automaton, diff *AutomatonDiff) {
	before := make(map[string]struct{}, len(oldA.Transitions))
	for _, t := range oldA.Transitions {
		before[t.Key()] = struct{}{}
	}
	after := make(map[string]struct{}, len(newA.Transitions))

	for _, t := range newA.Transitions {
		after[t.Key()] = struct{}{}
		if _, exists := before[t.Key()]; !exists {
			diff.AddedTransitions = append(diff.AddedTransitions, t)
		}
	}
	for _, t := range oldA.Transitions {
		if _, exists := after[t.Key()]; !exists {
			diff.RemovedTransitions = append(diff.RemovedTransitions, t)
		}
	}
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *AutomatonDiff) IsEmpty() bool {
	return len(d.AddedStates) == 0 &&
		len(d.RemovedStates) == 0 &&
		len(d.ChangedStates) == 0 &&
		len(d.AddedTransitions) == 0 &&
		len(d.RemovedTransitions) == 0
}
