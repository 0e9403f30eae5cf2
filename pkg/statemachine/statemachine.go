package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard decides at fire time whether a transition may be taken.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Action runs before the state changes. An error aborts the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Transition is one edge of the machine.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]
	Actions []Action[S, E]
}

type edgeKey[S, E comparable] struct {
	from  S
	event E
}

// Machine is a finite state machine over comparable state and event types.
// It is safe for concurrent use; guards and actions run under the machine's
// lock and must not call back into it.
type Machine[S, E comparable] struct {
	mu          sync.Mutex
	initial     S
	current     S
	transitions map[edgeKey[S, E]][]Transition[S, E]
}

// New returns a machine in the initial state with no transitions.
func New[S, E comparable](initial S) *Machine[S, E] {
	return &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[edgeKey[S, E]][]Transition[S, E]),
	}
}

func (m *Machine[S, E]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// AddTransition registers an edge. Several edges may share a from/event pair;
// Fire takes the first whose guards all pass.
func (m *Machine[S, E]) AddTransition(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := edgeKey[S, E]{from: t.From, event: t.Event}
	m.transitions[k] = append(m.transitions[k], t)
}

// Fire moves the machine along the first eligible edge for event.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.pick(ctx, event, data)
	if err != nil {
		return err
	}
	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return fmt.Errorf("%w: %w", ErrActionFailed, err)
		}
	}
	m.current = t.To
	return nil
}

// CanFire reports whether Fire would find an eligible edge. Actions are not run.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.pick(ctx, event, data)
	return err == nil
}

// Reset returns the machine to its initial state.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

func (m *Machine[S, E]) pick(ctx context.Context, event E, data any) (*Transition[S, E], error) {
	candidates := m.transitions[edgeKey[S, E]{from: m.current, event: event}]
	if len(candidates) == 0 {
		return nil, &NoTransitionError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
	}
	for i := range candidates {
		if guardsPass(ctx, candidates[i].Guards, m.current, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, &RejectedError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
}

func guardsPass[S, E comparable](ctx context.Context, guards []Guard[S, E], from S, event E, data any) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
