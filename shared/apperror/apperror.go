package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure the way it is surfaced to API clients.
type Code string

const (
	CodeUnauthenticated  Code = "unauthenticated"
	CodePermissionDenied Code = "permission-denied"
	CodeInvalidArgument  Code = "invalid-argument"
	CodeAlreadyExists    Code = "already-exists"
	CodeNotFound         Code = "not-found"
	CodeInternal         Code = "internal"
)

// Error is a coded error carrying a client-safe message. The wrapped cause,
// if any, is for logs only and never serialized to clients.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error with a client-safe message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and client-safe message to an underlying cause.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func Unauthenticated(message string) *Error {
	return New(CodeUnauthenticated, message)
}

func PermissionDenied(message string) *Error {
	return New(CodePermissionDenied, message)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// CodeOf extracts the code from err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

// MessageOf extracts the client-safe message from err. Uncoded errors yield a
// generic message so that internals never leak to clients.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return "something went wrong"
}

// HTTPStatus maps a code to its HTTP response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
