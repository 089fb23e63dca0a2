package loam

// AutomatonMetadata is the frontmatter (or JSON body) of an automaton document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type AutomatonMetadata struct {
	ID          string             `json:"id" mapstructure:"id"`
	Name        string             `json:"name" mapstructure:"name"`
	Description string             `json:"description" mapstructure:"description"`
	States      []LoaderState      `json:"states" mapstructure:"states"`
	Transitions []LoaderTransition `json:"transitions" mapstructure:"transitions"`
}

type LoaderState struct {
	Name    string  `json:"name" mapstructure:"name"`
	Initial bool    `json:"initial" mapstructure:"initial"`
	Final   bool    `json:"final" mapstructure:"final"`
	X       float64 `json:"x" mapstructure:"x"`
	Y       float64 `json:"y" mapstructure:"y"`
}

type LoaderTransition struct {
	From    string `json:"from" mapstructure:"from"`
	To      string `json:"to" mapstructure:"to"`
	Symbols string `json:"symbols" mapstructure:"symbols"`
	// On is shorthand for Symbols ("on: a,b"). Symbols wins when both are set.
	On string `json:"on" mapstructure:"on"`
}
