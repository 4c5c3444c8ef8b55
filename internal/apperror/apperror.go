// Package apperror classifies failures raised below the HTTP layer.
//
// Every error a repository or service returns is one of three kinds:
// a ValidationError (caller's fault), ErrNotFound (id does not resolve to a row),
// or a BackendError (connection or statement failure). Handlers use the
// helpers in this package to pick a status code; nothing here knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id does not resolve to a row.
var ErrNotFound = errors.New("record not found")

// NotFound wraps ErrNotFound with the entity name, e.g. "product 7 not found".
func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s %d not found: %w", entity, id, ErrNotFound)
}

// ValidationError reports missing or invalid input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// BackendError wraps a driver or connection failure. The driver message is kept
// verbatim for diagnostics.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Backend wraps err as a BackendError. A nil err stays nil.
func Backend(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsBackend(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}
