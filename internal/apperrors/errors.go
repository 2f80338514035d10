// Package apperrors defines the error taxonomy shared by the upstream
// adapters and the HTTP dispatcher.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by how the dispatcher reports it.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidNetwork
	KindNotFound
	KindUnavailable
)

var kindNames = map[Kind]string{
	KindInternal:       "Internal",
	KindInvalidNetwork: "InvalidNetwork",
	KindNotFound:       "NotFound",
	KindUnavailable:    "UpstreamUnavailable",
}

// String returns the kind name
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(k))
}

// HTTPStatus returns the default status code for the kind. Endpoints that
// report exhaustion differently override it in the dispatcher.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidNetwork:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error type returned across package boundaries
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Source  string // upstream provider, empty for local errors
	Op      string // logical operation, e.g. "blocks"
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	prefix := e.Code
	if e.Source != "" {
		prefix = e.Source + ": " + prefix
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", prefix, e.Message)
}

// Unwrap supports errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithSource returns a copy tagged with the upstream provider
func (e *Error) WithSource(source string) *Error {
	cp := *e
	cp.Source = source
	return &cp
}

// WithOp returns a copy tagged with the logical operation
func (e *Error) WithOp(op string) *Error {
	cp := *e
	cp.Op = op
	return &cp
}

// New creates a new error
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap wraps an existing error
func Wrap(err error, kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: err}
}

// Sentinels for errors.Is
var (
	ErrInvalidNetwork = New(KindInvalidNetwork, "INVALID_NETWORK", "Invalid network")
	ErrNotFound       = New(KindNotFound, "NOT_FOUND", "not found")
	ErrUnavailable    = New(KindUnavailable, "UPSTREAM_UNAVAILABLE", "upstream unavailable")
	ErrInternal       = New(KindInternal, "INTERNAL", "internal error")
)

// NotFound builds a not-found error
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, "NOT_FOUND", fmt.Sprintf(format, args...))
}

// Unavailable builds an upstream-unavailable error
func Unavailable(cause error, format string, args ...any) *Error {
	return Wrap(cause, KindUnavailable, "UPSTREAM_UNAVAILABLE", fmt.Sprintf(format, args...))
}

// Malformed reports a payload that decoded but is not usable
func Malformed(format string, args ...any) *Error {
	return New(KindUnavailable, "MALFORMED_RESPONSE", fmt.Sprintf(format, args...))
}

// KindOf returns the kind of err. Errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
