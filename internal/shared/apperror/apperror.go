package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of error categories the API can report.
// The boundary layer switches on Kind, never on message text.
type Kind int

const (
	Unexpected Kind = iota
	Validation
	NotFound
	Conflict
	AuthHeaderMissing
	InvalidCredential
	Forbidden
	InvalidReference
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf classifies any error. Plain errors are Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// MessageOf returns the user-facing message for an error. Unexpected
// errors get a generic message so internal detail never leaks.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Unexpected {
		return e.Message
	}
	return "an unexpected error occurred"
}

// Code returns the machine-readable code for a kind.
func Code(kind Kind) string {
	switch kind {
	case Validation:
		return "VALIDATION_ERROR"
	case NotFound:
		return "NOT_FOUND"
	case Conflict:
		return "CONFLICT"
	case AuthHeaderMissing:
		return "AUTH_HEADER_MISSING"
	case InvalidCredential:
		return "INVALID_CREDENTIAL"
	case Forbidden:
		return "FORBIDDEN"
	case InvalidReference:
		return "INVALID_REFERENCE"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus maps a kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case Validation, InvalidReference:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case AuthHeaderMissing, InvalidCredential:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
