// File: internal/services/api/errors.go
package api

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig  ErrorType = "CONFIG"
	ErrTypeAuth    ErrorType = "AUTH"
	ErrTypeFetch   ErrorType = "FETCH"
	ErrTypeCreate  ErrorType = "CREATE"
	ErrTypePersist ErrorType = "PERSIST"
	ErrTypeReply   ErrorType = "REPLY"
	ErrTypeTitle   ErrorType = "TITLE"
	ErrTypeDelete  ErrorType = "DELETE"
)

// APIError carries the failure class of a remote call along with the HTTP
// status when one was received. Status 0 means the request never got a
// response.
type APIError struct {
	Type      ErrorType
	Operation string
	Status    int
	Message   string
	Cause     error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("api %s error in %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	if e.Status != 0 {
		return fmt.Sprintf("api %s error in %s: HTTP %d: %s", e.Type, e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

func NewConfigError(message string) *APIError {
	return &APIError{Type: ErrTypeConfig, Operation: "config", Message: message}
}

func NewRequestError(t ErrorType, operation string, cause error) *APIError {
	return &APIError{Type: t, Operation: operation, Message: "request failed", Cause: cause}
}

func NewStatusError(t ErrorType, operation string, status int, body string) *APIError {
	return &APIError{Type: t, Operation: operation, Status: status, Message: body}
}

// IsType reports whether err is an *APIError of the given type.
func IsType(err error, t ErrorType) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == t
}
