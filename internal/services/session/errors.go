// File: internal/services/session/errors.go
package session

import "fmt"

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeState      ErrorType = "STATE"
	ErrTypeFetch      ErrorType = "FETCH"
	ErrTypeCreate     ErrorType = "CREATE"
	ErrTypeDelete     ErrorType = "DELETE"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
)

type SessionError struct {
	Type           ErrorType
	Operation      string
	Message        string
	ConversationID string
	Cause          error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("session %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}

// ErrSendInFlight is returned when Send is re-entered while a prior send
// has not finished. Callers that drive a UI can treat it the way a
// disabled send button would behave.
var ErrSendInFlight = &SessionError{
	Type:      ErrTypeState,
	Operation: "send",
	Message:   "another send is already in flight",
}

func NewValidationError(operation, msg string) *SessionError {
	return &SessionError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewFetchError(operation, conversationID string, cause error) *SessionError {
	return &SessionError{
		Type:           ErrTypeFetch,
		Operation:      operation,
		Message:        "could not fetch from server",
		ConversationID: conversationID,
		Cause:          cause,
	}
}

func NewCreateError(operation string, cause error) *SessionError {
	return &SessionError{
		Type:      ErrTypeCreate,
		Operation: operation,
		Message:   "could not create conversation",
		Cause:     cause,
	}
}

func NewDeleteError(conversationID string, cause error) *SessionError {
	return &SessionError{
		Type:           ErrTypeDelete,
		Operation:      "delete_conversation",
		Message:        "could not delete conversation",
		ConversationID: conversationID,
		Cause:          cause,
	}
}

func NewNotFoundError(operation, conversationID string) *SessionError {
	return &SessionError{
		Type:           ErrTypeNotFound,
		Operation:      operation,
		Message:        "conversation is not in the directory",
		ConversationID: conversationID,
	}
}
