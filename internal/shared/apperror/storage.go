// Package apperror provides the opaque error used for persistence failures.
//
// Domain failures (not found, validation, ownership) are sentinel errors owned
// by each feature. Anything coming back from the store that is not one of those
// is wrapped here so handlers can tell "your request was invalid" apart from
// "the system is unavailable" without leaking driver messages to clients.
package apperror

import (
	"context"
	"errors"
	"log/slog"
)

// ErrStorage matches every *StorageError via errors.Is.
var ErrStorage = errors.New("storage failure")

// StorageError wraps a failure returned by a repository.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage failure: " + e.Op
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports ErrStorage as a match so callers need not use errors.As.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Storage logs err and returns it wrapped as a *StorageError.
// A nil err yields nil. Errors that are already storage errors are returned unchanged.
func Storage(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	slog.ErrorContext(ctx, "storage operation failed", "op", op, "error", err)
	return &StorageError{Op: op, Err: err}
}
