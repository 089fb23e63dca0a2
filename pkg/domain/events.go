package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSimulate EventType = "simulate"
	EventAnalyze  EventType = "analyze"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SimulationEvent describes a finished simulation.
type SimulationEvent struct {
	EventBase
	Kind     Kind          `json:"kind"`
	Word     string        `json:"word"`
	Accepted bool          `json:"accepted"`
	Steps    int           `json:"steps"`
	Duration time.Duration `json:"duration"`
}

// AnalysisEvent describes a finished analysis run.
type AnalysisEvent struct {
	EventBase
	Kind        Kind `json:"kind"`
	States      int  `json:"states"`
	Diagnostics int  `json:"diagnostics"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the calling goroutine.
type LifecycleHooks struct {
	OnSimulate func(*SimulationEvent)
	OnAnalyze  func(*AnalysisEvent)
}
