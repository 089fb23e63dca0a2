// Package definition is the file format of named automata.
//
// Definitions are YAML by default and JSON when the file ends in .json:
//
//	id: ends-with-b
//	name: Words ending in b
//	states:
//	  - name: q0
//	    initial: true
//	  - name: q1
//	    final: true
//	transitions:
//	  - {from: q0, to: q0, symbols: a}
//	  - {from: q0, to: q1, symbols: b}
//	  - {from: q1, to: q0, symbols: a}
//	  - {from: q1, to: q1, symbols: b}
//
// Loading validates names and endpoints and reports every failure in a
// single AggregateError. Structural diagnostics (reachability, dead states)
// are not errors; ask the engine for them.
package definition
