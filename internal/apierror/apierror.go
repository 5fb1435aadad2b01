// Package apierror provides the error taxonomy shared by services and
// handlers. All errors returned to clients go through this package to ensure
// consistency and to prevent leaking internal details (stack traces, DB
// errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for transport-level status mapping.
type Kind int

const (
	KindInternal   Kind = iota // store/commit failure — fully rolled back, safe to retry
	KindValidation             // malformed or missing input, nothing applied
	KindNotFound               // a referenced id does not resolve
	KindConflict               // unique-code / unique-name violation
)

// Error is the structured failure result every service operation returns on
// its error path.
type Error struct {
	Kind   Kind              `json:"-"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Detail }

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Detail: fmt.Sprintf(format, args...)}
}

// ValidationFields wraps per-field tag failures from the request validator.
func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: "validation failed", Fields: fields}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Detail: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Detail: fmt.Sprintf(format, args...)}
}

// Internal hides the underlying store error behind a generic message.
// The wrapped error is for logs only, never for the response body.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Detail: "internal server error"}
}

// From coerces any error into an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// New returns a plain error envelope for handler-level failures (bad ids,
// malformed JSON) that never reach the service layer.
func New(msg string) *Error {
	return &Error{Kind: KindValidation, Detail: msg}
}
