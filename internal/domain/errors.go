package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller-supplied data that violates an invariant.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned only where absence must fail an operation.
	// Lookups report absence with a nil entity instead.
	ErrNotFound = errors.New("not found")
	// ErrStorageRead marks a failure reading from the underlying medium.
	ErrStorageRead = errors.New("storage read failure")
	// ErrStorageWrite marks a failure writing to the underlying medium.
	ErrStorageWrite = errors.New("storage write failure")
)

// StorageError is a read or write failure of a backend. Kind is one of
// ErrStorageRead or ErrStorageWrite; Err is the underlying cause.
type StorageError struct {
	Kind   error
	Reason string
	Err    error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Reason, e.Err)
}

func (e *StorageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ReadFailure wraps err as a storage read failure.
func ReadFailure(reason string, err error) error {
	return &StorageError{Kind: ErrStorageRead, Reason: reason, Err: err}
}

// WriteFailure wraps err as a storage write failure.
func WriteFailure(reason string, err error) error {
	return &StorageError{Kind: ErrStorageWrite, Reason: reason, Err: err}
}

// Validationf returns an ErrValidation carrying a formatted detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
