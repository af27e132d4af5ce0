// Package notify fans out machine transition records to interested
// observers, decoupling the synchronous dispatch loop of an fsm.Machine from
// consumers such as UI refreshers or audit trails.
//
// A Hub owns a set of subscribers with buffered channels. Publish is
// non-blocking by design: a machine's Execute call must never stall because
// an observer is slow, so records are dropped for full subscribers and the
// subscriber is evicted. The Callback helper adapts a hub to the
// fsm.WithStateChangeCallback option:
//
//	hub := notify.NewHub(16)
//	defer hub.Close()
//
//	machine := fsm.MustNew(initial,
//	    fsm.WithLabel("checkout"),
//	    fsm.WithStateChangeCallback(hub.Callback("checkout")),
//	)
//
//	sub := hub.Subscribe(ctx)
//	for change := range sub.Receive() {
//	    // change.From, change.To, change.Event, change.Kind
//	}
//
// Self-loops are reported with KindSelfLoop so observers can distinguish a
// re-entered state from an ordinary move. Internal transitions and ignored
// events never reach the hub, mirroring the engine's callback contract.
package notify
