package graph

import (
	"github.com/aretw0/automata/pkg/domain"
)

// Overlay contains simulation data to visualize on the graph.
type Overlay struct {
	VisitedStates []string
	CurrentState  string
	Steps         []domain.Step
	Accepted      bool
}

// OverlayFromResult highlights the witness path of a simulation.
// The last state of the path is marked as current.
func OverlayFromResult(res domain.SimulationResult) *Overlay {
	path := res.Path()
	o := &Overlay{
		Steps:    res.Steps(),
		Accepted: res.Accepted(),
	}
	for _, s := range path {
		o.VisitedStates = append(o.VisitedStates, s.Name)
	}
	if len(path) > 0 {
		o.CurrentState = path[len(path)-1].Name
	}
	return o
}

// walked reports whether the overlay path used t.
func (o *Overlay) walked(t domain.Transition) bool {
	if o == nil {
		return false
	}
	for _, step := range o.Steps {
		if step.From == t.From && step.To == t.To && t.Accepts(step.Symbol) {
			return true
		}
	}
	return false
}

func (o *Overlay) visited() map[string]bool {
	set := make(map[string]bool)
	if o == nil {
		return set
	}
	for _, name := range o.VisitedStates {
		set[name] = true
	}
	return set
}
