// Package errorbank defines the error taxonomy shared by every layer of the
// service. Repositories and services raise kinded errors; the HTTP layer maps
// them onto status codes without inspecting messages.
package errorbank

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind names an error category.
type Kind string

const (
	KindBadRequest          Kind = "bad_request"
	KindConflict            Kind = "conflict"
	KindNotFound            Kind = "not_found"
	KindUnprocessableEntity Kind = "unprocessable_entity"
	KindInternal            Kind = "internal"
)

var statusByKind = map[Kind]int{
	KindBadRequest:          http.StatusBadRequest,
	KindConflict:            http.StatusConflict,
	KindNotFound:            http.StatusNotFound,
	KindUnprocessableEntity: http.StatusUnprocessableEntity,
	KindInternal:            http.StatusInternalServerError,
}

// AppError is a kinded error with a client-facing message and an optional
// wrapped cause.
type AppError struct {
	kind    Kind
	message string
	cause   error
}

// Option mutates an AppError during construction.
type Option func(*AppError)

// WithCause attaches the underlying error for unwrapping and logs.
func WithCause(err error) Option {
	return func(e *AppError) { e.cause = err }
}

// New builds an AppError of the given kind. An empty message falls back to
// the kind name.
func New(kind Kind, message string, opts ...Option) *AppError {
	if message == "" {
		message = string(kind)
	}
	e := &AppError{kind: kind, message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Kind returns the category; a nil receiver counts as internal.
func (e *AppError) Kind() Kind {
	if e == nil {
		return KindInternal
	}
	return e.kind
}

// Message returns the client-facing text.
func (e *AppError) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// StatusCode maps the kind onto an HTTP status.
func (e *AppError) StatusCode() int {
	if e == nil {
		return http.StatusInternalServerError
	}
	if status, ok := statusByKind[e.kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// BadRequest builds a bad_request error.
func BadRequest(message string, opts ...Option) *AppError {
	return New(KindBadRequest, message, opts...)
}

// Conflict builds a conflict error.
func Conflict(message string, opts ...Option) *AppError {
	return New(KindConflict, message, opts...)
}

// NotFound builds a not_found error.
func NotFound(message string, opts ...Option) *AppError {
	return New(KindNotFound, message, opts...)
}

// Unprocessable builds an unprocessable_entity error.
func Unprocessable(message string, opts ...Option) *AppError {
	return New(KindUnprocessableEntity, message, opts...)
}

// Internal builds an internal error.
func Internal(message string, opts ...Option) *AppError {
	return New(KindInternal, message, opts...)
}

// From coerces any error into an AppError. Unknown errors become internal
// with the original attached as cause, so raw messages never leak to clients.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal error", WithCause(err))
}
