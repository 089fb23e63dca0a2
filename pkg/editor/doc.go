// Package editor holds the mutable side of an automaton: a Workspace that
// owns auto-naming and edit commands, and a Playback cursor for stepping
// through a simulation.
//
// The core packages only ever see the immutable snapshots a Workspace
// hands out.
package editor
