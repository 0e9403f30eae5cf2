package statemachine

// Builder assembles a Machine with a fluent API:
//
//	m := statemachine.NewBuilder[Status, Event](Idle).
//	    From(Idle).When(Submit).To(Submitting).Guard(allValid).Add().
//	    From(Submitting).When(Acknowledged).To(Success).Add().
//	    Build()
type Builder[S, E comparable] struct {
	machine *Machine[S, E]
	next    Transition[S, E]
}

func NewBuilder[S, E comparable](initial S) *Builder[S, E] {
	return &Builder[S, E]{machine: New[S, E](initial)}
}

func (b *Builder[S, E]) From(state S) *Builder[S, E] {
	b.next = Transition[S, E]{From: state}
	return b
}

func (b *Builder[S, E]) When(event E) *Builder[S, E] {
	b.next.Event = event
	return b
}

func (b *Builder[S, E]) To(state S) *Builder[S, E] {
	b.next.To = state
	return b
}

func (b *Builder[S, E]) Guard(g Guard[S, E]) *Builder[S, E] {
	b.next.Guards = append(b.next.Guards, g)
	return b
}

func (b *Builder[S, E]) Action(a Action[S, E]) *Builder[S, E] {
	b.next.Actions = append(b.next.Actions, a)
	return b
}

// Add registers the pending transition and starts a new one.
func (b *Builder[S, E]) Add() *Builder[S, E] {
	b.machine.AddTransition(b.next)
	b.next = Transition[S, E]{}
	return b
}

// FromAny registers the same edge from each of the given states.
func (b *Builder[S, E]) FromAny(states []S, event E, to S, guards ...Guard[S, E]) *Builder[S, E] {
	for _, s := range states {
		b.machine.AddTransition(Transition[S, E]{From: s, To: to, Event: event, Guards: guards})
	}
	return b
}

func (b *Builder[S, E]) Build() *Machine[S, E] {
	return b.machine
}
