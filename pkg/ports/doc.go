/*
Package ports defines the interfaces between the automata core and its adapters.

These interfaces decouple the engine from storage backends and transports, allowing
the same simulation and analysis to be served from a CLI, an HTTP API or an MCP server.

# Key Interfaces

  - Catalog: read-only source of named automaton definitions (e.g., Loam documents).
  - AutomatonStore: writable catalog used by servers (Memory, Redis).
  - Engine: simulation and analysis surface consumed by driving adapters.
  - DistributedLocker: distributed locking for concurrent edits of the same automaton.
*/
package ports
