// Package statemachine implements a small generic finite state machine.
//
// A Machine is parameterised by its state and event types, which only need
// to be comparable. Transitions may carry guards, evaluated in order at fire
// time, and actions, run before the state changes. When several transitions
// share a source state and event the first one whose guards pass wins, which
// allows guard-based branching.
//
// Fire returns an error wrapping ErrNoTransitionAvailable when nothing leaves
// the current state for the event and ErrTransitionRejected when guards
// blocked every candidate.
package statemachine
