package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no record exists for the
// requested incident number.
var ErrNotFound = errors.New("store: not found")

// ValidationError reports caller-supplied input that the store refuses
// to act on, such as a blank incident number.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "store: " + e.Msg
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps an underlying filesystem or encoding failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
