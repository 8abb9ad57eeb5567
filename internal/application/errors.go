package application

import "errors"

var (
	// ErrUnauthorized is returned when an operation needs a signed-in profile and none is held.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidTransition is returned when a reservation status change would reverse a final state.
	ErrInvalidTransition = errors.New("application: invalid status transition")
	// ErrNotReady is returned while the initial load has not completed.
	ErrNotReady = errors.New("application: not ready")
	// ErrNotPersisted wraps storage write failures. The in-memory change that
	// preceded the write is kept.
	ErrNotPersisted = errors.New("application: change not persisted")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// errOrNil returns v as an error only when it holds field errors.
func (v *ValidationError) errOrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}
