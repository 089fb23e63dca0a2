package domain

import (
	"slices"
	"strings"
)

// Transition is a directed edge between two states, referenced by name.
//
// Label is the symbol specification as typed by the user, e.g. "a", "a,b,c"
// or "ε". An empty (or all-blank) label is normalized to ε.
type Transition struct {
	From  string `json:"from" yaml:"from" mapstructure:"from"`
	To    string `json:"to" yaml:"to" mapstructure:"to"`
	Label string `json:"symbols" yaml:"symbols" mapstructure:"symbols"`
}

// NewTransition creates a transition from one state to another.
func NewTransition(from, to, label string) Transition {
	return Transition{From: from, To: to, Label: label}
}

// ParseSymbols splits a label into its symbols.
// Parts are trimmed and blanks dropped; if nothing is left the result is [ε].
func ParseSymbols(label string) []string {
	parts := strings.Split(label, SymbolSeparator)
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		symbols = append(symbols, p)
	}
	if len(symbols) == 0 {
		return []string{Epsilon}
	}
	return symbols
}

// Symbols returns the parsed symbol set of the transition.
func (t Transition) Symbols() []string {
	return ParseSymbols(t.Label)
}

// SetLabel replaces the symbol specification in place.
func (t *Transition) SetLabel(label string) {
	t.Label = label
}

// IsEpsilon reports whether the transition can be taken without consuming input.
func (t Transition) IsEpsilon() bool {
	return slices.Contains(t.Symbols(), Epsilon)
}

// Accepts reports whether symbol is part of the transition's symbol set.
func (t Transition) Accepts(symbol string) bool {
	return slices.Contains(t.Symbols(), symbol)
}

// Leaves reports whether the transition leaves the named state.
func (t Transition) Leaves(state string) bool {
	return t.From == state
}

// Key is the identity of the transition: both endpoints plus the label text
// without trailing whitespace. Two edges with the same endpoints but
// different label text are distinct even when their symbol sets overlap.
func (t Transition) Key() string {
	return t.From + "\x00" + t.To + "\x00" + strings.TrimRight(t.Label, " \t\r\n")
}

// Equal compares transitions by Key.
func (t Transition) Equal(other Transition) bool {
	return t.Key() == other.Key()
}

// DisplayLabel renders the symbol set for diagrams and traces.
func (t Transition) DisplayLabel() string {
	return strings.Join(t.Symbols(), SymbolSeparator)
}
