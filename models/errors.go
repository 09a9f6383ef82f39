package models

import (
	"errors"
	"net/http"
	"strings"
)

// ErrorKind classifies a request error for HTTP status mapping
type ErrorKind int

// Request error kinds
const (
	ValidationError ErrorKind = iota
	PermissionError
	NotFoundError
	InvalidTransitionError
	InvalidStateError
	ConflictError
)

// RequestError is an error the client caused and can act on. Anything that
// is not a RequestError is treated as an internal failure by the services.
type RequestError struct {
	Kind    ErrorKind
	Message string
	// Fields lists the offending input fields for validation errors
	Fields []string
}

func (e *RequestError) Error() string {
	if len(e.Fields) > 0 {
		return e.Message + ": " + strings.Join(e.Fields, ", ")
	}
	return e.Message
}

// Status returns the HTTP status code for the error kind
func (e *RequestError) Status() int {
	switch e.Kind {
	case PermissionError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// NewValidationError returns a ValidationError naming the offending fields
func NewValidationError(msg string, fields ...string) *RequestError {
	return &RequestError{Kind: ValidationError, Message: msg, Fields: fields}
}

// NewPermissionError ...
func NewPermissionError(msg string) *RequestError {
	return &RequestError{Kind: PermissionError, Message: msg}
}

// NewNotFoundError ...
func NewNotFoundError(msg string) *RequestError {
	return &RequestError{Kind: NotFoundError, Message: msg}
}

// NewInvalidTransitionError ...
func NewInvalidTransitionError(msg string) *RequestError {
	return &RequestError{Kind: InvalidTransitionError, Message: msg}
}

// NewInvalidStateError ...
func NewInvalidStateError(msg string) *RequestError {
	return &RequestError{Kind: InvalidStateError, Message: msg}
}

// NewConflictError ...
func NewConflictError(msg string) *RequestError {
	return &RequestError{Kind: ConflictError, Message: msg}
}

// AsRequestError unwraps err into a RequestError if it is one
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}
