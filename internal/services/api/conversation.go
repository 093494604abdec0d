// File: internal/services/api/conversation.go
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/charchat/charchat-cli/internal/domain"
)

type createConversationRequest struct {
	UserID      string `json:"user_id"`
	CharacterID string `json:"character_id"`
	Title       string `json:"title"`
}

// The create endpoint wraps the record, unlike the list endpoint which
// returns a bare array.
type createConversationResponse struct {
	Conversation domain.Conversation `json:"conversation"`
}

type createMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
}

type chatRequest struct {
	ConversationID string `json:"conversation_id"`
}

type chatResponse struct {
	AIMessage string `json:"ai_message"`
}

type titleResponse struct {
	Title string `json:"title"`
}

// Conversations lists every conversation for a user/character pair.
func (c *Client) Conversations(ctx context.Context, userID, characterID string) ([]domain.Conversation, error) {
	query := url.Values{}
	query.Set("user_id", userID)
	query.Set("character_id", characterID)

	var conversations []domain.Conversation
	err := c.call(ctx, http.MethodGet, "/conversations", query, nil, &conversations,
		ErrTypeFetch, "list_conversations")
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// CreateConversation creates a conversation server-side and returns the
// authoritative record including the server-assigned id.
func (c *Client) CreateConversation(ctx context.Context, userID, characterID, title string) (*domain.Conversation, error) {
	var resp createConversationResponse
	err := c.call(ctx, http.MethodPost, "/conversations", nil,
		createConversationRequest{UserID: userID, CharacterID: characterID, Title: title},
		&resp, ErrTypeCreate, "create_conversation")
	if err != nil {
		return nil, err
	}
	return &resp.Conversation, nil
}

func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	return c.call(ctx, http.MethodDelete, "/conversations/"+conversationID, nil, nil, nil,
		ErrTypeDelete, "delete_conversation")
}

// Messages lists the ordered messages of a conversation.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	query := url.Values{}
	query.Set("conversation_id", conversationID)

	var messages []domain.Message
	err := c.call(ctx, http.MethodGet, "/messages", query, nil, &messages,
		ErrTypeFetch, "list_messages")
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage persists one message. The server assigns its own id,
// which may differ from any locally synthesized one.
func (c *Client) CreateMessage(ctx context.Context, conversationID, role, content string) (*domain.Message, error) {
	var message domain.Message
	err := c.call(ctx, http.MethodPost, "/messages", nil,
		createMessageRequest{ConversationID: conversationID, Role: role, Content: content},
		&message, ErrTypePersist, "create_message")
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// RequestReply asks the server to generate the assistant's next turn for
// the conversation and returns its text.
func (c *Client) RequestReply(ctx context.Context, conversationID string) (string, error) {
	var resp chatResponse
	err := c.call(ctx, http.MethodPost, "/chat", nil,
		chatRequest{ConversationID: conversationID}, &resp, ErrTypeReply, "request_reply")
	if err != nil {
		return "", err
	}
	return resp.AIMessage, nil
}

// GenerateTitle asks the server to summarize the conversation into a
// short title.
func (c *Client) GenerateTitle(ctx context.Context, conversationID string) (string, error) {
	var resp titleResponse
	err := c.call(ctx, http.MethodPost, "/get-title", nil,
		chatRequest{ConversationID: conversationID}, &resp, ErrTypeTitle, "generate_title")
	if err != nil {
		return "", err
	}
	return resp.Title, nil
}
