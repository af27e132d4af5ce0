package notify

import (
	"github.com/fsmkit/fsmkit/pkg/fsm"
)

// Kind classifies an observed dispatch.
type Kind string

const (
	// KindTransition is a full transition between two distinct states.
	KindTransition Kind = "transition"
	// KindSelfLoop is a full transition whose target equals its source;
	// exit and entry hooks fired even though the state value is unchanged.
	KindSelfLoop Kind = "self_loop"
)

// Change describes one completed full transition of a machine.
type Change struct {
	Machine string
	From    string
	To      string
	Event   string
	Kind    Kind
}

// ChangeOf builds a Change record from the values an fsm state-change
// callback receives.
func ChangeOf(machine string, from, to fsm.State, event fsm.Event) Change {
	kind := KindTransition
	if from.Name() == to.Name() {
		kind = KindSelfLoop
	}
	return Change{
		Machine: machine,
		From:    from.Name(),
		To:      to.Name(),
		Event:   event.Name(),
		Kind:    kind,
	}
}
