// Package namespace provides the in-memory directory tree and the cursor-relative
// operations (ls, cd, mkdir, touch, cat) that manipulate it.
//
// This file contains error types and error handling utilities.
package namespace

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a path segment is missing or is not a directory
	ErrNotFound = errors.New("path not found")

	// ErrConflict indicates a file sits where a directory is required.
	// It is only returned under ConflictFail.
	ErrConflict = errors.New("not a directory")

	// ErrIsDirectory indicates touch targeted an existing directory.
	// It is only returned under ConflictFail.
	ErrIsDirectory = errors.New("is a directory")

	// ErrInvalidPath indicates a path with no usable segments where one is required
	ErrInvalidPath = errors.New("invalid path format")
)

// Common operation names for consistent logging and error reporting
const (
	OpList            = "ls"    // Listing a directory
	OpChangeDirectory = "cd"    // Moving the cursor
	OpMakeDirectory   = "mkdir" // Creating directories
	OpCreateFile      = "touch" // Creating or truncating a file
	OpReadFile        = "cat"   // Reading file content
	OpStat            = "stat"  // Looking up a node's kind
)

// Error wraps a namespace failure with the operation and the path exactly as
// the caller supplied it. Error() renders the line shown to a shell user.
type Error struct {
	Op   string // Operation that failed
	Path string // Path as given by the caller
	Err  error  // Underlying sentinel
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrConflict):
		return fmt.Sprintf("Not a directory: %s", e.Path)
	case errors.Is(e.Err, ErrIsDirectory):
		return fmt.Sprintf("Is a directory: %s", e.Path)
	}

	switch e.Op {
	case OpReadFile, OpStat:
		return fmt.Sprintf("No such file: %s", e.Path)
	case OpMakeDirectory:
		return fmt.Sprintf("Cannot create directory: %s", e.Path)
	case OpCreateFile:
		return fmt.Sprintf("Cannot create file: %s", e.Path)
	default:
		return fmt.Sprintf("No such directory: %s", e.Path)
	}
}

// Unwrap implements error unwrapping for the errors.Is/As functions
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, path string, err error) *Error {
	nsErr := &Error{Op: op, Path: path, Err: err}
	nsLogger.Debug("%s %q failed: %v", op, path, err)
	return nsErr
}

// IsNotFound reports whether err is a missing-path failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
