package fsm

import (
	"log/slog"

	"github.com/google/uuid"
)

// Option configures a machine during construction.
type Option func(*Machine) error

// TransitionOption attaches an action or guard to a single transition.
type TransitionOption func(*transition)

// WithLabel sets the diagnostic label attached to every log line this machine
// emits. Labels have no behavioral meaning.
func WithLabel(label string) Option {
	return func(m *Machine) error {
		m.label = label
		return nil
	}
}

// WithLogger sets the logger used for dispatch diagnostics. Defaults to
// slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) error {
		if logger != nil {
			m.logger = logger
		}
		return nil
	}
}

// WithStateChangeCallback registers a callback fired after every completed
// full transition, including self-loops. Internal transitions and ignored
// events never trigger it.
func WithStateChangeCallback(fn func(from, to State, event Event)) Option {
	return func(m *Machine) error {
		m.onChange = fn
		return nil
	}
}

// WithTransition registers a full transition during construction.
func WithTransition(source, target State, event Event, opts ...TransitionOption) Option {
	return func(m *Machine) error {
		if target == nil {
			return ErrNilState
		}
		return m.RegisterTransition(source, target, event, opts...)
	}
}

// WithInternalTransition registers an internal transition during construction.
func WithInternalTransition(source State, event Event, opts ...TransitionOption) Option {
	return func(m *Machine) error {
		return m.RegisterInternalTransition(source, event, opts...)
	}
}

// WithEntryAction registers a state entry hook during construction.
func WithEntryAction(state State, action StateAction) Option {
	return func(m *Machine) error {
		if state == nil {
			return ErrNilState
		}
		m.SetEntryAction(state, action)
		return nil
	}
}

// WithExitAction registers a state exit hook during construction.
func WithExitAction(state State, action StateAction) Option {
	return func(m *Machine) error {
		if state == nil {
			return ErrNilState
		}
		m.SetExitAction(state, action)
		return nil
	}
}

// WithSealOnDispatch makes the transition table a checked invariant: any
// RegisterTransition call after the first dispatch fails with
// ErrMachineSealed instead of silently missing the frozen index.
func WithSealOnDispatch() Option {
	return func(m *Machine) error {
		m.sealOnDispatch = true
		return nil
	}
}

// WithDeferredExitActions reorders full-transition dispatch so the exit hook
// of the source state fires only after the transition action has succeeded.
// A failing transition action then leaves no exit side effects behind. The
// default order (exit first, no rollback) matches the documented eager
// protocol.
func WithDeferredExitActions() Option {
	return func(m *Machine) error {
		m.deferredExit = true
		return nil
	}
}

// WithAction sets the side effect executed when the transition fires.
func WithAction(action TransitionAction) TransitionOption {
	return func(t *transition) {
		t.action = action
	}
}

// WithGuard sets the guard evaluated before the transition fires. A rejected
// dispatch is ignored the same way an unregistered one is.
func WithGuard(guard Guard) TransitionOption {
	return func(t *transition) {
		t.guard = guard
	}
}

func generateLabel() string {
	return "fsm-" + uuid.NewString()
}
