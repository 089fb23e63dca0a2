/*
Package domain contains the core domain models of the automata engine.

It defines the entities of a finite automaton (States and Transitions), the
immutable Automaton snapshot handed to the simulator and analyzer, and the
SimulationResult they produce. This package is kept pure and free of external
dependencies like I/O or persistence.

# Key Entities

  - State: A named node with initial/final flags and a display position.
  - Transition: A directed edge labeled by one or more symbols, or by ε.
  - Automaton: An ordered snapshot of states and transitions.
  - SimulationResult: The verdict and witness path of a single simulation.
*/
package domain
