package models

import (
	"errors"
	"fmt"
)

// ValidationError is a rejected write with a human-readable reason. Handlers
// surface it to the caller instead of a generic server error.
type ValidationError struct {
	Reason string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrAlreadyResponded rejects a second submission against an invitation whose
// response has already been recorded.
var ErrAlreadyResponded = errors.New("invitation has already been responded to")
