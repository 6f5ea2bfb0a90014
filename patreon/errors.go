package patreon

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField        = errors.New("missing required field")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrMalformedTimestamp  = errors.New("malformed timestamp")
	ErrUnknownEnumValue    = errors.New("unknown enum value")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrUnknownKind         = errors.New("unknown entity kind")
)

// ValidationError reports the first field of a payload that failed to
// decode. Err is one of ErrMissingField, ErrTypeMismatch,
// ErrMalformedTimestamp or ErrUnknownEnumValue.
type ValidationError struct {
	// Kind is the entity kind Decode was asked for.
	Kind Kind
	// Path locates the field from the root of the payload, e.g.
	// "currently_entitled_tiers[1].title".
	Path  string
	Field string
	// Expected names the declared type on a mismatch.
	Expected string
	// Value is the raw value that was rejected; nil for a missing field.
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrMissingField):
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	case errors.Is(e.Err, ErrTypeMismatch):
		return fmt.Sprintf("%s: %s: %v: expected %s, got %T %v", e.Kind, e.Path, e.Err, e.Expected, e.Value, e.Value)
	default:
		return fmt.Sprintf("%s: %s: %v %q", e.Kind, e.Path, e.Err, fmt.Sprint(e.Value))
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UnresolvedReferenceError is returned when a relationship that was not
// embedded in the decoded payload is dereferenced.
type UnresolvedReferenceError struct {
	Kind Kind
	ID   string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%v: %s was not included in the payload", ErrUnresolvedReference, e.Kind)
	}
	return fmt.Sprintf("%v: %s %q", ErrUnresolvedReference, e.Kind, e.ID)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}
