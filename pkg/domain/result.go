package domain

import "encoding/json"

// SimulationResult is the verdict and witness path of a single simulation.
// It is immutable: the constructor copies its inputs and every accessor
// returns a copy.
type SimulationResult struct {
	accepted bool
	path     []State
	symbols  []string
	word     string
	message  string
}

// NewSimulationResult builds a result from the accumulated trace.
func NewSimulationResult(accepted bool, path []State, symbols []string, word, message string) SimulationResult {
	return SimulationResult{
		accepted: accepted,
		path:     append([]State{}, path...),
		symbols:  append([]string{}, symbols...),
		word:     word,
		message:  message,
	}
}

// Accepted reports the verdict.
func (r SimulationResult) Accepted() bool { return r.accepted }

// Path returns the visited states, including ε-detours.
func (r SimulationResult) Path() []State { return append([]State{}, r.path...) }

// SymbolsUsed returns the symbol consumed on each path edge (ε for ε-edges).
func (r SimulationResult) SymbolsUsed() []string { return append([]string{}, r.symbols...) }

// Word returns the simulated input.
func (r SimulationResult) Word() string { return r.word }

// Message returns the human-readable verdict or diagnostic.
func (r SimulationResult) Message() string { return r.message }

// Steps pairs each path edge with the symbol used on it.
func (r SimulationResult) Steps() []Step {
	if len(r.path) < 2 {
		return nil
	}
	steps := make([]Step, 0, len(r.path)-1)
	for i := 1; i < len(r.path); i++ {
		sym := Epsilon
		if i-1 < len(r.symbols) {
			sym = r.symbols[i-1]
		}
		steps = append(steps, Step{From: r.path[i-1].Name, To: r.path[i].Name, Symbol: sym})
	}
	return steps
}

// Step is a single edge of a witness path.
type Step struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Symbol string `json:"symbol"`
}

type resultJSON struct {
	Accepted bool     `json:"accepted"`
	Word     string   `json:"word"`
	Path     []string `json:"path"`
	Symbols  []string `json:"symbols_used"`
	Message  string   `json:"message"`
}

// MarshalJSON renders the path as state names.
func (r SimulationResult) MarshalJSON() ([]byte, error) {
	names := make([]string, len(r.path))
	for i, s := range r.path {
		names[i] = s.Name
	}
	return json.Marshal(resultJSON{
		Accepted: r.accepted,
		Word:     r.word,
		Path:     names,
		Symbols:  append([]string{}, r.symbols...),
		Message:  r.message,
	})
}

// RenderWord renders a word for messages, using ε for the empty word.
func RenderWord(word string) string {
	if word == "" {
		return Epsilon
	}
	return word
}
