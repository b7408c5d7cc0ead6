package formbind

import (
	"errors"
	"fmt"
	"strings"
)

// Error variables define the binding failure taxonomy.
var (
	// ErrMissingField indicates a Required or RequiredMany field had no
	// matching key in the submitted pairs.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidValue indicates a value was present but failed conversion.
	ErrInvalidValue = errors.New("invalid field value")

	// ErrDuplicateField indicates two descriptors share a name. This is a
	// schema construction error, never a bind-time error.
	ErrDuplicateField = errors.New("duplicate field descriptor")

	// ErrInvalidSchema indicates a malformed descriptor (empty name, nil setter).
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrInvalidTarget indicates the bind target is not of the shape the
	// schema's setters expect (e.g. not a non-nil pointer to struct).
	ErrInvalidTarget = errors.New("invalid bind target")
)

// FieldError describes a single field's binding failure: which field,
// the offending raw value when there is one, and the underlying reason.
type FieldError struct {
	// Field is the descriptor name that failed to resolve.
	Field string

	// Value is the raw string that failed conversion. Empty for missing fields.
	Value string

	// Err is the taxonomy sentinel: ErrMissingField or ErrInvalidValue.
	Err error

	// Reason carries the underlying parser failure for invalid values,
	// exactly as the converter reported it. Nil for missing fields.
	Reason error
}

// Error formats a human-readable description of the failure.
func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrInvalidValue) {
		return fmt.Sprintf("invalid value %q for field %q: %v", e.Value, e.Field, e.Reason)
	}
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Unwrap exposes the taxonomy sentinel for errors.Is checks.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// FieldErrors accumulates per-field failures for the BindAll variant.
type FieldErrors []*FieldError

// Error joins the individual failures in field declaration order.
func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual field errors to errors.Is and errors.As.
func (e FieldErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, fe := range e {
		errs[i] = fe
	}
	return errs
}

// Fields returns the names of all failed fields in declaration order.
func (e FieldErrors) Fields() []string {
	names := make([]string, len(e))
	for i, fe := range e {
		names[i] = fe.Field
	}
	return names
}
