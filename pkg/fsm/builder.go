package fsm

// Builder provides a fluent API for wiring a machine transition by transition.
type Builder struct {
	machine *Machine
	err     error

	currentFrom  State
	currentEvent Event
	currentTo    State
	internal     bool
	guard        Guard
	action       TransitionAction
}

// NewBuilder creates a builder for a machine starting in the given state.
// Construction errors are collected and reported by Build.
func NewBuilder(initial State, opts ...Option) *Builder {
	m, err := New(initial, opts...)
	return &Builder{machine: m, err: err}
}

// From sets the source state of the transition being described.
func (b *Builder) From(state State) *Builder {
	b.resetTransition()
	b.currentFrom = state
	return b
}

// When sets the event that triggers the transition.
func (b *Builder) When(event Event) *Builder {
	b.currentEvent = event
	return b
}

// To sets the target state, making this a full transition.
func (b *Builder) To(state State) *Builder {
	b.currentTo = state
	b.internal = false
	return b
}

// Internal marks the transition as internal: no state change, no entry/exit hooks.
func (b *Builder) Internal() *Builder {
	b.currentTo = nil
	b.internal = true
	return b
}

// WithGuard attaches a guard to the transition being described.
func (b *Builder) WithGuard(guard Guard) *Builder {
	b.guard = guard
	return b
}

// WithAction attaches an action to the transition being described.
func (b *Builder) WithAction(action TransitionAction) *Builder {
	b.action = action
	return b
}

// Add finalizes the described transition and registers it with the machine.
func (b *Builder) Add() *Builder {
	if b.err != nil {
		return b
	}
	if !b.internal && b.currentTo == nil {
		b.err = ErrNilState
		return b
	}

	var opts []TransitionOption
	if b.action != nil {
		opts = append(opts, WithAction(b.action))
	}
	if b.guard != nil {
		opts = append(opts, WithGuard(b.guard))
	}

	b.err = b.machine.RegisterTransition(b.currentFrom, b.currentTo, b.currentEvent, opts...)
	b.resetTransition()
	return b
}

// OnEnter registers an entry hook for the given state.
func (b *Builder) OnEnter(state State, action StateAction) *Builder {
	if b.err == nil {
		if state == nil {
			b.err = ErrNilState
			return b
		}
		b.machine.SetEntryAction(state, action)
	}
	return b
}

// OnExit registers an exit hook for the given state.
func (b *Builder) OnExit(state State, action StateAction) *Builder {
	if b.err == nil {
		if state == nil {
			b.err = ErrNilState
			return b
		}
		b.machine.SetExitAction(state, action)
	}
	return b
}

// Build returns the constructed machine, or the first error encountered while
// describing it.
func (b *Builder) Build() (*Machine, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.machine, nil
}

func (b *Builder) resetTransition() {
	b.currentFrom = nil
	b.currentEvent = nil
	b.currentTo = nil
	b.internal = false
	b.guard = nil
	b.action = nil
}
