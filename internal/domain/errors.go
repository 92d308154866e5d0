package domain

import (
	"errors"
	"fmt"
)

// Business conditions surfaced to callers. All are recoverable and never
// process-fatal.
var (
	ErrNotFound       = errors.New("not found")
	ErrNoSeats        = errors.New("no available seats")
	ErrDuplicateCode  = errors.New("duplicate identifier")
	ErrActiveBookings = errors.New("flight has active bookings")
)

// ValidationError is a field-level rule failure with a fixed message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError marks a persistence-layer fault. It is always propagated
// upward instead of being swallowed into an ambiguous nil/false result.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
