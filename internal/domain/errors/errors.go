package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSequenceExhausted = errors.New("daily reference sequence exhausted")
	ErrNotification      = errors.New("notification failed")
	ErrQueueFull         = errors.New("notification queue is full")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
