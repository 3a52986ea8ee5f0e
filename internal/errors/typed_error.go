package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "VALIDATION"
	ErrorTypeUnauthenticated     ErrorType = "UNAUTHENTICATED"
	ErrorTypeForbidden           ErrorType = "FORBIDDEN"
	ErrorTypeNotFound            ErrorType = "NOT_FOUND"
	ErrorTypeInternalServerError ErrorType = "INTERNAL_SERVER_ERROR"
)

type TypedError interface {
	error
	ErrorType() ErrorType
}

type typedError struct {
	err       error
	errorType ErrorType
}

func (e *typedError) Error() string        { return e.err.Error() }
func (e *typedError) ErrorType() ErrorType { return e.errorType }

func (e *typedError) Unwrap() error {
	return e.err
}

func NewTypedError(message string, code ErrorType) error {
	return &typedError{err: stdErrors.New(message), errorType: code}
}

func ValidationError(message string, args ...any) error {
	return &typedError{err: fmt.Errorf(message, args...), errorType: ErrorTypeValidation}
}

// Validation marks err as a client-side validation failure.
func Validation(err error) error {
	return &typedError{err: err, errorType: ErrorTypeValidation}
}

func InternalServerError(message string, args ...any) error {
	return &typedError{err: fmt.Errorf(message, args...), errorType: ErrorTypeInternalServerError}
}

// APIError is the single failure shape adapters return. Message holds the
// server supplied text and is empty when the server gave none.
type APIError struct {
	Type    ErrorType
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	case e.Status != 0:
		return http.StatusText(e.Status)
	}
	return string(e.Type)
}

func (e *APIError) ErrorType() ErrorType { return e.Type }

func (e *APIError) Unwrap() error {
	return e.Err
}

// FromStatus classifies an HTTP failure status.
func FromStatus(status int, message string) *APIError {
	return &APIError{Type: TypeForStatus(status), Status: status, Message: message}
}

// Transport wraps a failure that never produced an HTTP response.
func Transport(err error) *APIError {
	return &APIError{Type: ErrorTypeInternalServerError, Err: err}
}

func TypeForStatus(status int) ErrorType {
	switch {
	case status == http.StatusUnauthorized:
		return ErrorTypeUnauthenticated
	case status == http.StatusForbidden:
		return ErrorTypeForbidden
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status >= 400 && status < 500:
		return ErrorTypeValidation
	}
	return ErrorTypeInternalServerError
}

// TypeOf returns the ErrorType carried anywhere in err's chain, or the
// internal server error type for untyped errors.
func TypeOf(err error) ErrorType {
	var typed TypedError
	if stdErrors.As(err, &typed) {
		return typed.ErrorType()
	}
	return ErrorTypeInternalServerError
}

func IsUnauthenticated(err error) bool {
	return err != nil && TypeOf(err) == ErrorTypeUnauthenticated
}

// UserMessage picks the text a slice stores for a failed operation: the
// server's own message when there is one, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if stdErrors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	var typed *typedError
	if stdErrors.As(err, &typed) && typed.errorType != ErrorTypeInternalServerError {
		return typed.Error()
	}
	return fallback
}
