// Package apperr defines the error taxonomy shared by services and
// repositories. Handlers translate these into HTTP status codes; nothing
// below the HTTP layer knows about status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both genuinely missing records and records owned
	// by someone else. The two cases must stay indistinguishable to the
	// caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a uniqueness violation (username, email,
	// per-user category name).
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized signals a missing, malformed or expired credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden signals a role mismatch on a restricted route.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries per-field detail for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}

// NewValidation builds a ValidationError from field/message pairs.
func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// messageError pairs a caller-facing message with one of the sentinel
// kinds so errors.Is still matches.
type messageError struct {
	msg  string
	kind error
}

func (e *messageError) Error() string { return e.msg }

func (e *messageError) Unwrap() error { return e.kind }

// Conflictf builds an ErrConflict with a caller-facing message.
func Conflictf(format string, args ...any) error {
	return &messageError{msg: fmt.Sprintf(format, args...), kind: ErrConflict}
}

// NotFoundf builds an ErrNotFound with a caller-facing message.
func NotFoundf(format string, args ...any) error {
	return &messageError{msg: fmt.Sprintf(format, args...), kind: ErrNotFound}
}

// Unauthorizedf builds an ErrUnauthorized with a caller-facing message.
func Unauthorizedf(format string, args ...any) error {
	return &messageError{msg: fmt.Sprintf(format, args...), kind: ErrUnauthorized}
}
