package domain

import "errors"

// ErrAutomatonNotFound is returned when an automaton ID cannot be found in a store or catalog.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrStateNotFound is returned when an edit references a state that does not exist.
var ErrStateNotFound = errors.New("state not found")

// ErrDuplicateState is returned when a state name is already taken.
var ErrDuplicateState = errors.New("duplicate state")

// ErrTransitionNotFound is returned when an edit references a transition that does not exist.
var ErrTransitionNotFound = errors.New("transition not found")

// ErrInvalidDefinition is returned when a serialized automaton cannot be turned into a snapshot.
var ErrInvalidDefinition = errors.New("invalid automaton definition")

// ErrDuplicateTransition is returned when a transition with the same endpoints and label already exists.
var ErrDuplicateTransition = errors.New("duplicate transition")
