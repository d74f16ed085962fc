// Package apperror defines the error taxonomy surfaced by the HTTP API.
package apperror

import (
	"errors"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeStore      = "STORE_ERROR"
	CodeInternal   = "INTERNAL_SERVER_ERROR"
)

// Error is an error with an HTTP status and a stable code.
type Error struct {
	Status  int                 `json:"-"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Err     error               `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed request input with per-field details.
func Validation(fields map[string][]string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "Invalid input",
		Fields:  fields,
	}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: message,
	}
}

// Store wraps a failure of the data store.
func Store(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeStore,
		Message: "Data store error",
		Err:     err,
	}
}

// From returns err as an *Error, or nil when it is not one.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return nil
}
