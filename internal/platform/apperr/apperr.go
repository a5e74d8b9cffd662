// Package apperr defines the error taxonomy shared by all domain services:
// not-found, conflict, validation, unauthorized and upstream failures.
// Handlers return these unchanged; the echo error handler maps them to the
// API's {message, error} response shape.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	// Err carries the underlying cause, e.g. the opaque payload returned
	// by the notification provider. It is surfaced in the response body
	// for upstream failures only.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a provider-side failure. Scheduling operations never
// escalate it; per-message delivery failures travel inside the send result,
// and Upstream surfaces only when the provider itself is unusable, e.g.
// dispatch without configured credentials.
func Upstream(err error, format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadGateway, Message: fmt.Sprintf(format, args...), Err: err}
}

func statusIs(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == status
}

func IsNotFound(err error) bool     { return statusIs(err, http.StatusNotFound) }
func IsConflict(err error) bool     { return statusIs(err, http.StatusConflict) }
func IsValidation(err error) bool   { return statusIs(err, http.StatusBadRequest) }
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }
func IsForbidden(err error) bool    { return statusIs(err, http.StatusForbidden) }
func IsUpstream(err error) bool     { return statusIs(err, http.StatusBadGateway) }
