// session/errors.go
package session

import (
	"errors"
	"fmt"
)

// ValidationError is returned for out-of-range parameters, a non-positive sizing risk,
// or a trade amount above what the dynamic stop allows.
type ValidationError struct {
	Field   string  // Offending field, e.g. "risk_percent" or "amount"
	Value   float64 // Value that was received
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(field string, value float64, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

// StopError is returned when an action is attempted while the session is stopped.
type StopError struct {
	Reason    StopReason
	HasReason bool
	Message   string
}

func (e *StopError) Error() string { return e.Message }

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStopError reports whether err wraps a *StopError.
func IsStopError(err error) bool {
	var se *StopError
	return errors.As(err, &se)
}
