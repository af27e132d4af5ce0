package fsm

import (
	"context"
)

// State represents a single configuration of a machine. Implementations are
// caller-defined; the engine only relies on Name for identity and diagnostics.
type State interface {
	Name() string
}

// Event represents a trigger that can cause a state transition.
type Event interface {
	Name() string
}

// StateAction is a side-effecting hook bound to a state, fired when the
// machine enters or leaves it during a full transition. It receives no
// payload; a non-nil error aborts the remainder of the dispatch sequence.
type StateAction func(ctx context.Context) error

// TransitionAction is the side effect associated with a (source, event) pair.
// For full transitions it receives the caller-supplied arguments from Execute
// and may return a non-nil State to override the statically configured
// target. For internal transitions it is invoked with no arguments and its
// returned State is ignored.
type TransitionAction func(ctx context.Context, args ...any) (State, error)

// Guard decides whether a registered transition may fire. A rejecting guard
// makes the dispatch behave exactly like an undefined transition: the event
// is ignored and the current state is returned unchanged.
type Guard func(ctx context.Context, from State, event Event, args ...any) bool

// StringState provides a simple string-based state implementation for basic use cases.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent provides a simple string-based event implementation for basic use cases.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}

// transitionKey identifies a transition table entry by the names of its
// source state and triggering event.
type transitionKey struct {
	state string
	event string
}

func keyOf(state State, event Event) transitionKey {
	return transitionKey{state: state.Name(), event: event.Name()}
}

// transition is a single transition table entry. A nil target marks an
// internal transition: the state never changes and entry/exit hooks never
// fire, regardless of any action result.
type transition struct {
	source State
	target State
	event  Event
	action TransitionAction
	guard  Guard
}

func (t *transition) internal() bool {
	return t.target == nil
}
