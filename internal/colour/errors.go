package colour

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Use errors.Is against a returned error to tell
// the classes of input failure apart.
var (
	// ErrWrongType is returned when a colour value is not a string.
	ErrWrongType = errors.New("wrong type")

	// ErrBadFormat is returned when a string is not a hex colour.
	ErrBadFormat = errors.New("wrong format")

	// ErrEmpty is returned when a non-empty collection was required.
	ErrEmpty = errors.New("empty collection")
)

// ValidationError describes a rejected input value.
type ValidationError struct {
	Field string
	Value string
	Kind  error
	Err   error
}

// NewValidationError constructs a ValidationError of the given kind.
func NewValidationError(field, value string, kind error) error {
	return &ValidationError{Field: field, Value: value, Kind: kind}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	msg := "invalid colour input"
	if e.Kind != nil {
		msg = e.Kind.Error()
	}
	switch {
	case e.Field != "" && e.Value != "":
		return fmt.Sprintf("%s: %s: %q", msg, e.Field, e.Value)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", msg, e.Field)
	case e.Value != "":
		return fmt.Sprintf("%s: %q", msg, e.Value)
	}
	return msg
}

// Unwrap exposes both the kind and any underlying cause.
func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
