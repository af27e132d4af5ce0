// Package logger provides a thin factory around Go's slog package for the
// dispatch diagnostics an fsm.Machine emits: machine label, source state,
// event, and resulting state on every dispatch.
//
// The single factory New creates a *slog.Logger configured by Option
// functions: output format (text or json), minimum level, output writer, and
// static attributes. NewFromEnv reads LOG_LEVEL and LOG_FORMAT through
// pkg/config so embedding applications configure diagnostics uniformly.
//
// Helper constructors in attr.go (Machine, FromState, ToState, EventName,
// Error) keep attribute naming consistent with the attributes the engine
// itself emits.
//
// # Usage
//
//	log := logger.New(logger.WithDevelopment())
//
//	machine := fsm.MustNew(initial,
//	    fsm.WithLabel("session-42"),
//	    fsm.WithLogger(log),
//	)
//
// At debug level every dispatch decision is visible, including silently
// ignored events — the only way the engine's ignore policy is observable.
package logger
