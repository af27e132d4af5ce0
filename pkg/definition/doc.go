// Package definition builds fsm machines from declarative descriptions,
// typically authored in YAML, with actions and guards referenced by name.
//
// The engine in pkg/fsm deliberately performs almost no validation: it
// accepts any state or event name and silently overwrites duplicate
// registrations. When transition tables are authored as data rather than
// code, that permissiveness turns typos into silently ignored events. This
// package adds the missing checks at the declarative layer: an optional
// states list every referenced state must appear in, duplicate (from, event)
// detection, and build-time resolution of action names so a dangling
// reference fails loudly instead of dispatching a nil hook.
//
// # Usage
//
//	const doc = `
//	label: order-flow
//	initial: pending
//	states: [pending, paid, shipped]
//	transitions:
//	  - {from: pending, to: paid, event: pay, action: charge}
//	  - {from: paid, to: shipped, event: ship}
//	  - {from: paid, event: note, action: annotate}   # internal
//	entry:
//	  shipped: notifyCustomer
//	`
//
//	def, err := definition.Parse([]byte(doc))
//	// ...
//	machine, err := def.Build(definition.Registry{
//	    Actions: map[string]fsm.TransitionAction{"charge": charge, "annotate": annotate},
//	    Hooks:   map[string]fsm.StateAction{"notifyCustomer": notify},
//	})
//
// A transition without a "to" field is registered as an internal transition.
// Build accepts additional fsm.Option values, so loggers, callbacks, and
// dispatch modes are wired the same way as for machines built in code.
package definition
