package definition

import "errors"

var (
	ErrInvalidYAML         = errors.New("invalid definition yaml")
	ErrMissingInitial      = errors.New("definition has no initial state")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrDuplicateTransition = errors.New("duplicate transition for (from, event) pair")
	ErrUndeclaredState     = errors.New("state not declared in states list")
	ErrUnknownAction       = errors.New("name not found in registry")
)
