package shell

import (
	"errors"
	"fmt"
)

var (
	// ErrExit is returned by Execute when the exit command ends the session
	ErrExit = errors.New("session exited")

	// ErrUnknownCommand indicates the first word is not a known command
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage indicates a command was called without its required argument
	ErrUsage = errors.New("missing argument")

	// ErrParse indicates the line could not be split into words
	ErrParse = errors.New("parse error")
)

// Error is a dispatcher-level failure. Detail holds the command name, the
// usage text, or the parser message, depending on Err.
type Error struct {
	Detail string
	Err    error
}

// Error renders the line shown to the user
func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnknownCommand):
		return fmt.Sprintf("Unknown command: %s", e.Detail)
	case errors.Is(e.Err, ErrUsage):
		return fmt.Sprintf("Usage: %s", e.Detail)
	case errors.Is(e.Err, ErrParse):
		return fmt.Sprintf("Parse error: %s", e.Detail)
	default:
		return e.Detail
	}
}

// Unwrap implements error unwrapping for the errors.Is/As functions
func (e *Error) Unwrap() error {
	return e.Err
}
