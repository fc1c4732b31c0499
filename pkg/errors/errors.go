package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed API error with HTTP awareness. Details carries
// opaque upstream text for the client; Err is internal only.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// The closed error set surfaced to API clients. Nothing outside this list
// ever crosses the handler boundary.
var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "invalid request parameters")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid login or password")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "invalid or expired token")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "access denied")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "resource already exists")
	ErrUnsupportedMedia   = New("UNSUPPORTED_MEDIA_TYPE", http.StatusUnsupportedMediaType, "content type must be application/json")
	ErrUpstream           = New("UPSTREAM_UNAVAILABLE", http.StatusInternalServerError, "remote store unavailable")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithDetails returns a copy carrying opaque detail text for the client.
func WithDetails(err *Error, details string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Details = details
	return &clone
}

// Is reports whether err belongs to the same taxonomy entry as target,
// comparing codes rather than pointers so clones still match.
func Is(err error, target *Error) bool {
	if target == nil {
		return err == nil
	}
	e := FromError(err)
	return e != nil && e.Code == target.Code
}
