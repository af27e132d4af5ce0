package logger

import (
	"log/slog"

	"github.com/fsmkit/fsmkit/pkg/fsm"
)

// Machine creates an attribute identifying a machine by its diagnostic label.
func Machine(label string) slog.Attr {
	return slog.String("machine", label)
}

// FromState creates an attribute for the source state of a dispatch.
func FromState(s fsm.State) slog.Attr {
	return slog.String("from", s.Name())
}

// ToState creates an attribute for the resulting state of a dispatch.
func ToState(s fsm.State) slog.Attr {
	return slog.String("to", s.Name())
}

// EventName creates an attribute for a triggering event.
func EventName(e fsm.Event) slog.Attr {
	return slog.String("event", e.Name())
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}
