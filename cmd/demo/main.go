// Command demo drives a small approval workflow machine through every
// dispatch mode the engine supports: plain transitions, an internal
// transition, a dynamic target override, a self-loop, and a silently
// ignored event. Transition records observed through a notify.Hub are
// printed as they arrive.
//
// Diagnostics are configured through LOG_LEVEL and LOG_FORMAT; run with
// LOG_LEVEL=debug to see the engine's per-dispatch log lines, including
// the ignored event.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fsmkit/fsmkit/pkg/definition"
	"github.com/fsmkit/fsmkit/pkg/fsm"
	"github.com/fsmkit/fsmkit/pkg/logger"
	"github.com/fsmkit/fsmkit/pkg/notify"
)

const workflow = `
label: approval-flow
initial: draft
states: [draft, in_review, approved, published, archived]
transitions:
  - {from: draft, to: in_review, event: submit, action: stamp}
  - {from: draft, event: edit, action: countEdit}
  - {from: in_review, to: draft, event: reject}
  - {from: in_review, to: approved, event: approve, action: routeApproval}
  - {from: approved, to: published, event: publish}
  - {from: published, to: published, event: republish}
  - {from: published, to: archived, event: archive}
entry:
  published: announce
exit:
  draft: flushDraft
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}

func run() error {
	log, err := logger.NewFromEnv()
	if err != nil {
		return err
	}

	edits := 0
	registry := definition.Registry{
		Actions: map[string]fsm.TransitionAction{
			"stamp": func(ctx context.Context, args ...any) (fsm.State, error) {
				fmt.Println("  action: stamping submission", args)
				return nil, nil
			},
			"countEdit": func(ctx context.Context, args ...any) (fsm.State, error) {
				edits++
				fmt.Printf("  action: edit %d recorded without leaving draft\n", edits)
				return nil, nil
			},
			// Fast-track approvals skip the published gate entirely.
			"routeApproval": func(ctx context.Context, args ...any) (fsm.State, error) {
				if len(args) > 0 && args[0] == "fast-track" {
					return fsm.StringState("published"), nil
				}
				return nil, nil
			},
		},
		Hooks: map[string]fsm.StateAction{
			"announce": func(ctx context.Context) error {
				fmt.Println("  hook: entered published")
				return nil
			},
			"flushDraft": func(ctx context.Context) error {
				fmt.Println("  hook: leaving draft")
				return nil
			},
		},
	}

	def, err := definition.Parse([]byte(workflow))
	if err != nil {
		return err
	}

	hub := notify.NewHub(16)
	defer hub.Close()

	machine, err := def.Build(registry,
		fsm.WithLogger(log),
		fsm.WithStateChangeCallback(hub.Callback(def.Label)),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := hub.Subscribe(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for change := range sub.Receive() {
			fmt.Printf("observed: %s --%s--> %s (%s)\n", change.From, change.Event, change.To, change.Kind)
		}
	}()

	type dispatch struct {
		event string
		args  []any
	}
	script := []dispatch{
		{event: "edit"}, // internal: state stays draft
		{event: "edit"},
		{event: "submit", args: []any{"v3"}},
		{event: "reject"},
		{event: "submit", args: []any{"v4"}},
		{event: "approve", args: []any{"fast-track"}}, // override jumps straight to published
		{event: "republish"},                          // self-loop, hooks fire again
		{event: "publish"},                            // undefined in published: silently ignored
		{event: "archive"},
	}

	for _, d := range script {
		state, err := machine.Execute(ctx, fsm.StringEvent(d.event), d.args...)
		if err != nil {
			return err
		}
		fmt.Printf("dispatched %q, now in %q\n", d.event, state.Name())
	}

	cancel()
	<-done

	fmt.Printf("final state: %s\n", machine.Current().Name())
	return nil
}
