package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNoTransitionAvailable = errors.New("statemachine: no transition available")
	ErrTransitionRejected    = errors.New("statemachine: transition rejected by guards")
	ErrActionFailed          = errors.New("statemachine: transition action failed")
)

// NoTransitionError is returned when no edge leaves the current state for
// the event.
type NoTransitionError struct {
	State string
	Event string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state %q for event %q", e.State, e.Event)
}

func (e *NoTransitionError) Unwrap() error { return ErrNoTransitionAvailable }

// RejectedError is returned when every candidate edge was blocked by a guard.
type RejectedError struct {
	State string
	Event string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transition from state %q for event %q was rejected by guards", e.State, e.Event)
}

func (e *RejectedError) Unwrap() error { return ErrTransitionRejected }
