package editor

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
)

// NamePrefix is the prefix of auto-generated state names.
const NamePrefix = "q"

// Workspace is the mutable editing session behind an automaton.
// It owns the auto-naming counter and hands out immutable snapshots.
// Safe for concurrent use.
type Workspace struct {
	mu          sync.RWMutex
	states      []domain.State
	transitions []domain.Transition
	counter     int
	logger      *slog.Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger configures a logger for edit events.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FromAutomaton loads a snapshot into a new workspace.
// State names must be unique and every transition endpoint must exist.
// Labels are normalized the same way Connect does.
func FromAutomaton(a domain.Automaton, opts ...Option) (*Workspace, error) {
	w := New(opts...)
	for _, s := range a.States {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("%w: state with empty name", domain.ErrInvalidDefinition)
		}
		if w.indexOf(s.Name) >= 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateState, s.Name)
		}
		w.states = append(w.states, s)
	}
	for _, t := range a.Transitions {
		if w.indexOf(t.From) < 0 || w.indexOf(t.To) < 0 {
			return nil, fmt.Errorf("%w: transition %s -> %s", domain.ErrStateNotFound, t.From, t.To)
		}
		t.SetLabel(normalizeLabel(t.Label))
		if w.transitionIndex(t) >= 0 {
			return nil, fmt.Errorf("%w: %s -> %s [%s]", domain.ErrDuplicateTransition, t.From, t.To, t.Label)
		}
		w.transitions = append(w.transitions, t)
	}
	return w, nil
}

// Snapshot returns an immutable copy of the current automaton.
func (w *Workspace) Snapshot() domain.Automaton {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.NewAutomaton(w.states, w.transitions)
}

// NextName reserves the next free auto-generated name (q0, q1, ...).
func (w *Workspace) NextName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nextName()
}

func (w *Workspace) nextName() string {
	for {
		name := NamePrefix + strconv.Itoa(w.counter)
		w.counter++
		if w.indexOf(name) < 0 {
			return name
		}
	}
}

// ResetNaming restarts auto-naming from q0. Taken names are still skipped.
func (w *Workspace) ResetNaming() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.counter = 0
}

// Clear removes every state and transition and resets auto-naming.
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.states = nil
	w.transitions = nil
	w.counter = 0
	w.logger.Debug("workspace cleared")
}

// AddState creates a state at the given position.
// An empty name is replaced by the next auto-generated one.
func (w *Workspace) AddState(name string, x, y float64) (domain.State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = w.nextName()
	}
	if w.indexOf(name) >= 0 {
		return domain.State{}, fmt.Errorf("%w: %s", domain.ErrDuplicateState, name)
	}

	s := domain.State{Name: name, X: x, Y: y}
	w.states = append(w.states, s)
	w.logger.Debug("state created", "state", name)
	return s, nil
}

// RenameState changes a state's name and rewrites every incident transition.
func (w *Workspace) RenameState(oldName, newName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: empty state name", domain.ErrInvalidDefinition)
	}
	i := w.indexOf(oldName)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrStateNotFound, oldName)
	}
	if newName == oldName {
		return nil
	}
	if w.indexOf(newName) >= 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateState, newName)
	}

	w.states[i].Name = newName
	for j := range w.transitions {
		if w.transitions[j].From == oldName {
			w.transitions[j].From = newName
		}
		if w.transitions[j].To == oldName {
			w.transitions[j].To = newName
		}
	}
	w.logger.Debug("state renamed", "from", oldName, "to", newName)
	return nil
}

// RemoveState deletes a state and every transition touching it.
// It returns the transitions removed by the cascade.
func (w *Workspace) RemoveState(name string) ([]domain.Transition, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrStateNotFound, name)
	}
	w.states = append(w.states[:i:i], w.states[i+1:]...)

	var kept, removed []domain.Transition
	for _, t := range w.transitions {
		if t.From == name || t.To == name {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	w.transitions = kept
	w.logger.Debug("state deleted", "state", name, "transitions", len(removed))
	return removed, nil
}

// SetInitial sets or clears the initial flag of a state.
// Setting it is exclusive: the flag is cleared on every other state and
// those states are returned so callers can refresh them.
func (w *Workspace) SetInitial(name string, initial bool) ([]domain.State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrStateNotFound, name)
	}
	w.states[i].Initial = initial
	if !initial {
		return nil, nil
	}

	var cleared []domain.State
	for j := range w.states {
		if j != i && w.states[j].Initial {
			w.states[j].Initial = false
			cleared = append(cleared, w.states[j])
		}
	}
	return cleared, nil
}

// SetFinal sets or clears the final flag of a state.
func (w *Workspace) SetFinal(name string, final bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrStateNotFound, name)
	}
	w.states[i].Final = final
	return nil
}

// Move updates a state's display position.
func (w *Workspace) Move(name string, x, y float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrStateNotFound, name)
	}
	w.states[i].X, w.states[i].Y = x, y
	return nil
}

// Connect adds a transition between two existing states.
// The label is trimmed; an empty label becomes ε.
func (w *Workspace) Connect(from, to, label string) (domain.Transition, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, name := range []string{from, to} {
		if w.indexOf(name) < 0 {
			return domain.Transition{}, fmt.Errorf("%w: %s", domain.ErrStateNotFound, name)
		}
	}

	t := domain.NewTransition(from, to, normalizeLabel(label))
	if w.transitionIndex(t) >= 0 {
		return domain.Transition{}, fmt.Errorf("%w: %s -> %s [%s]", domain.ErrDuplicateTransition, from, to, t.Label)
	}
	w.transitions = append(w.transitions, t)
	w.logger.Debug("transition created", "from", from, "to", to, "symbols", t.DisplayLabel())
	return t, nil
}

// Relabel edits a transition's symbols in place, keeping its position in
// the transition order. Relabelling to the current label is a no-op.
func (w *Workspace) Relabel(t domain.Transition, label string) (domain.Transition, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.transitionIndex(t)
	if i < 0 {
		return domain.Transition{}, fmt.Errorf("%w: %s -> %s [%s]", domain.ErrTransitionNotFound, t.From, t.To, t.Label)
	}

	updated := w.transitions[i]
	updated.SetLabel(normalizeLabel(label))
	if updated.Equal(w.transitions[i]) {
		return w.transitions[i], nil
	}
	if w.transitionIndex(updated) >= 0 {
		return domain.Transition{}, fmt.Errorf("%w: %s -> %s [%s]", domain.ErrDuplicateTransition, t.From, t.To, updated.Label)
	}

	w.transitions[i] = updated
	w.logger.Debug("transition relabelled", "from", t.From, "to", t.To, "symbols", updated.DisplayLabel())
	return updated, nil
}

// Disconnect removes a transition.
func (w *Workspace) Disconnect(t domain.Transition) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.transitionIndex(t)
	if i < 0 {
		return fmt.Errorf("%w: %s -> %s [%s]", domain.ErrTransitionNotFound, t.From, t.To, t.Label)
	}
	w.transitions = append(w.transitions[:i:i], w.transitions[i+1:]...)
	return nil
}

func (w *Workspace) indexOf(name string) int {
	for i, s := range w.states {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func (w *Workspace) transitionIndex(t domain.Transition) int {
	for i, existing := range w.transitions {
		if existing.Equal(t) {
			return i
		}
	}
	return -1
}

func normalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Epsilon
	}
	return label
}
