// File: internal/domain/conversation.go
package domain

import "time"

// Conversation is a titled thread of messages between a user and one
// character. The server assigns the ID and owns the record; the client
// only ever mutates the title locally after /get-title resolves.
type Conversation struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	CharacterID        string    `json:"character_id"`
	Title              string    `json:"title"`
	MessageCount       int       `json:"message_count"`
	LastMessageContent string    `json:"last_message_content"`
	LastMessageRole    string    `json:"last_message_role"`
	CreatedAt          time.Time `json:"created_at"`
	LastMessageAt      time.Time `json:"last_message_at"`
}
