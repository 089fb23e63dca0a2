package definition

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Definition is the serializable form of a named automaton, as stored in
// files, catalogs and stores.
type Definition struct {
	ID          string              `json:"id" yaml:"id" mapstructure:"id"`
	Name        string              `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	States      []domain.State      `json:"states" yaml:"states" mapstructure:"states"`
	Transitions []domain.Transition `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// New wraps a snapshot into a definition.
func New(id string, a domain.Automaton) Definition {
	a = a.Clone()
	return Definition{
		ID:          id,
		States:      a.States,
		Transitions: a.Transitions,
	}
}

// Automaton returns the snapshot described by the definition.
func (d Definition) Automaton() domain.Automaton {
	return domain.NewAutomaton(d.States, d.Transitions)
}

// Title is the display name, falling back to the ID.
func (d Definition) Title() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Validate checks that state names are present and unique and that every
// transition references declared states. All failures are reported at once.
func (d Definition) Validate() error {
	var errs []error

	seen := make(map[string]int, len(d.States))
	for i, s := range d.States {
		key := fmt.Sprintf("states[%d].name", i)
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			continue
		}
		if first, dup := seen[s.Name]; dup {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: fmt.Sprintf("duplicate of states[%d]", first),
				Value:  s.Name,
			})
			continue
		}
		seen[s.Name] = i
	}

	for i, t := range d.Transitions {
		if _, ok := seen[t.From]; !ok {
			errs = append(errs, &ValidationError{Key: fmt.Sprintf("transitions[%d].from", i), Reason: "unknown state", Value: t.From})
		}
		if _, ok := seen[t.To]; !ok {
			errs = append(errs, &ValidationError{Key: fmt.Sprintf("transitions[%d].to", i), Reason: "unknown state", Value: t.To})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs, kind: domain.ErrInvalidDefinition}
	}
	return nil
}
