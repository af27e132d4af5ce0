package fsm

import (
	"errors"
	"fmt"
)

var (
	ErrNilInitialState = errors.New("initial state cannot be nil")
	ErrNilState        = errors.New("state cannot be nil")
	ErrNilEvent        = errors.New("event cannot be nil")

	// ErrMachineSealed is returned when a transition is registered after the
	// first dispatch on a machine built with WithSealOnDispatch.
	ErrMachineSealed = errors.New("machine is sealed: transition table is frozen after the first dispatch")
)

// Stage identifies which part of the dispatch sequence an action failure
// originated from.
type Stage string

const (
	StageExit       Stage = "exit"
	StageTransition Stage = "transition"
	StageInternal   Stage = "internal"
	StageEntry      Stage = "entry"
)

// ActionError wraps a failure raised by an entry, exit, or transition action.
// The underlying error is reachable through errors.Is/errors.As; the engine
// performs no recovery and no rollback of side effects already applied.
type ActionError struct {
	Machine string
	Stage   Stage
	State   string // state whose hook failed, or the source state for transition actions
	Event   string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("machine %q: %s action failed in state %q on event %q: %v",
		e.Machine, e.Stage, e.State, e.Event, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func IsActionError(err error) bool {
	var e *ActionError
	return errors.As(err, &e)
}
