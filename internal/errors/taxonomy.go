package errors

import (
	stderrors "errors"
	"fmt"
)

// The only failure classes a user ever sees. Everything else is wrapped into one of these.
var (
	ErrSave         = stderrors.New("could not save")
	ErrInvalidValue = stderrors.New("invalid value")
	ErrRequired     = stderrors.New("required field missing")
)

// ValidationError reports a rejected input field. Kind is ErrInvalidValue or ErrRequired.
type ValidationError struct {
	Field  string
	Kind   error
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Kind, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Invalid builds a ValidationError for a malformed or out-of-range field.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Kind: ErrInvalidValue, Reason: reason}
}

// Required builds a ValidationError for a missing field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: ErrRequired}
}

// SaveFailed wraps a persistence failure so callers can match ErrSave.
func SaveFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrSave, err)
}

// UserMessage maps err onto one of the user-visible messages, or "" when it is none of them.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrRequired):
		return ErrRequired.Error()
	case stderrors.Is(err, ErrInvalidValue):
		return ErrInvalidValue.Error()
	case stderrors.Is(err, ErrSave):
		return ErrSave.Error()
	default:
		return ""
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
