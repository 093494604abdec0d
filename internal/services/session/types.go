// File: internal/services/session/types.go
package session

import (
	"context"

	"github.com/charchat/charchat-cli/internal/domain"
)

// Logger defines the logging interface used across the session controller.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Backend is the slice of the server API the session controller depends
// on. *api.Client satisfies it; tests substitute a fake.
type Backend interface {
	Conversations(ctx context.Context, userID, characterID string) ([]domain.Conversation, error)
	CreateConversation(ctx context.Context, userID, characterID, title string) (*domain.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	Messages(ctx context.Context, conversationID string) ([]domain.Message, error)
	CreateMessage(ctx context.Context, conversationID, role, content string) (*domain.Message, error)
	RequestReply(ctx context.Context, conversationID string) (string, error)
	GenerateTitle(ctx context.Context, conversationID string) (string, error)
}

// SendResult reports what one pass through the send pipeline did. The
// pipeline tolerates persist and reply failures without aborting, so they
// are carried here instead of the function error.
type SendResult struct {
	ConversationID  string
	NewConversation bool
	UserMessage     domain.Message
	Reply           *domain.Message // nil when the reply request failed
	PersistErr      error           // user message not confirmed persisted
	ReplyErr        error           // assistant reply not received
}
