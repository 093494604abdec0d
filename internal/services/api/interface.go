// File: internal/services/api/interface.go
package api

import (
	"context"

	"github.com/charchat/charchat-cli/internal/domain"
)

// Logger defines the logging interface used by the api client.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// AuthResult is the server's answer to a successful login, register or
// Google sign-in call.
type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Service is the full REST surface of the character-chat server that this
// client consumes. The server is the source of truth for every record.
type Service interface {
	// Account
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, username, email, password, name string) (*AuthResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
	Characters(ctx context.Context) ([]domain.Character, error)

	// Conversations and messages
	Conversations(ctx context.Context, userID, characterID string) ([]domain.Conversation, error)
	CreateConversation(ctx context.Context, userID, characterID, title string) (*domain.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	Messages(ctx context.Context, conversationID string) ([]domain.Message, error)
	CreateMessage(ctx context.Context, conversationID, role, content string) (*domain.Message, error)

	// Generation
	RequestReply(ctx context.Context, conversationID string) (string, error)
	GenerateTitle(ctx context.Context, conversationID string) (string, error)
}
