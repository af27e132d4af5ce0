// Package fsm provides a small, embeddable finite-state-machine engine:
// given caller-defined states and events, it tracks the current state and
// dispatches caller-supplied actions on transitions.
//
// The package revolves around two minimal interfaces – State and Event – that
// give you full freedom to model domain specific states and events while the
// engine handles:
//  1. Transition table lookup with a silent-ignore policy for undefined pairs
//  2. Entry/exit hooks fired around full transitions
//  3. Transition actions that may dynamically override the target state
//  4. Internal transitions that fire an action without any state change
//
// Ready-made helpers such as StringState and StringEvent let you get started
// quickly for simple scenarios, while custom struct types can satisfy the
// interfaces when additional data is required.
//
// # Architecture
//
// A Machine owns a transition table keyed by (source state, event) name
// pairs, one entry per pair with last-write-wins registration, plus separate
// entry and exit hook registries. On the first call to Execute the table is
// snapshotted into a dispatch index; the index is then frozen for the
// lifetime of the machine, so transitions registered after the first dispatch
// are invisible until Reindex is called. WithSealOnDispatch turns such late
// registration into a checked error instead.
//
// Each dispatch has exactly two execution modes and one fallback:
//
//   - Full transition: exit(source), then the transition action with the
//     caller's arguments, then entry(target), then the state update. A
//     non-nil State returned by the action replaces the configured target.
//     Self-loops are full transitions whose target equals the source and
//     still fire both hooks.
//   - Internal transition: only the action fires, with no arguments; state
//     and hooks are untouched.
//   - Undefined pair or rejected guard: the event is ignored, the current
//     state is returned, and the decision appears only in the diagnostic log.
//
// # Usage
//
//	import (
//	    "context"
//
//	    "github.com/fsmkit/fsmkit/pkg/fsm"
//	)
//
//	const (
//	    Draft     = fsm.StringState("draft")
//	    Published = fsm.StringState("published")
//	    Publish   = fsm.StringEvent("publish")
//	)
//
//	machine := fsm.MustNew(Draft,
//	    fsm.WithLabel("article-42"),
//	    fsm.WithTransition(Draft, Published, Publish),
//	)
//
//	state, err := machine.Execute(context.Background(), Publish)
//
// # Error Handling
//
// Ignored events are not errors. Failures raised by entry, exit, or
// transition actions abort the rest of the dispatch sequence and propagate
// wrapped in an *ActionError; effects already applied are not rolled back, so
// a failing transition action can leave exit side effects behind with the
// state variable never advanced. WithDeferredExitActions narrows that window
// by firing the exit hook only after the transition action succeeds.
//
// # Concurrency
//
// A Machine is not safe for concurrent use. Execute performs the whole
// dispatch sequence synchronously on the calling goroutine with no locking;
// each instance expects a single logical owner, typically one machine per
// session confined to one goroutine or event loop.
package fsm
