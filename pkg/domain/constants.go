package domain

// Epsilon is the symbol that marks a transition consuming no input.
// It is also used to render the empty word.
const Epsilon = "ε"

// SymbolSeparator splits a transition label into its symbols ("a,b,c").
const SymbolSeparator = ","

// Kind classifies an automaton by the semantics the simulator applies to it.
type Kind string

const (
	KindDFA Kind = "DFA"
	KindNFA Kind = "NFA"
)
