package domain

// State is a named automaton node.
// Identity is the name; the flags and position are attributes.
type State struct {
	Name    string `json:"name" yaml:"name" mapstructure:"name"`
	Initial bool   `json:"initial,omitempty" yaml:"initial,omitempty" mapstructure:"initial"`
	Final   bool   `json:"final,omitempty" yaml:"final,omitempty" mapstructure:"final"`

	// X and Y are only consumed by visual layers.
	X float64 `json:"x,omitempty" yaml:"x,omitempty" mapstructure:"x"`
	Y float64 `json:"y,omitempty" yaml:"y,omitempty" mapstructure:"y"`
}

// NewState creates a non-initial, non-final state with the given name.
// Names are never generated here; see editor.Workspace for auto-naming.
func NewState(name string) State {
	return State{Name: name}
}

// Equal reports whether two states share the same identity (name).
func (s State) Equal(other State) bool {
	return s.Name == other.Name
}

func (s State) String() string {
	return s.Name
}
