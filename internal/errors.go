package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrEncoding     = errors.New("encoding failed")
	ErrMissingField = errors.New("missing field")
)

// ValidationError reports every required input that was absent or empty.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// EncodingError reports a sub-document that could not be serialized.
type EncodingError struct {
	Document string
	Err      error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Document, e.Err)
}

func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a required hash input with no value.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
