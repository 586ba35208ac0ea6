// Package fs exposes a namespace as a FUSE filesystem.
//
// This file contains error translation utilities.
package fs

import (
	"errors"
	"syscall"

	"vfsh/internal/logging"
	"vfsh/internal/namespace"
)

var (
	errLogger = logging.GetLogger().WithPrefix("error")
)

// ToFuseError converts a namespace error to the FUSE error code the kernel
// expects. Unknown errors become EIO.
func ToFuseError(err error) error {
	if err == nil {
		return nil
	}

	var nsErr *namespace.Error
	if errors.As(err, &nsErr) {
		errLogger.Trace("Converting namespace error to FUSE error: %v", nsErr)
	}

	switch {
	case errors.Is(err, namespace.ErrNotFound):
		return syscall.ENOENT
	case errors.Is(err, namespace.ErrConflict):
		return syscall.ENOTDIR
	case errors.Is(err, namespace.ErrIsDirectory):
		return syscall.EISDIR
	case errors.Is(err, namespace.ErrInvalidPath):
		return syscall.EINVAL
	case errors.Is(err, syscall.EPERM):
		return syscall.EPERM
	default:
		errLogger.Debug("Unknown error type, returning EIO: %v", err)
		return syscall.EIO
	}
}
