// File: internal/services/session/timeline.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/charchat/charchat-cli/internal/domain"
)

// Timeline is the ordered message list of the selected conversation. It
// is append-only and never re-sorted: when two messages share a
// timestamp, insertion order wins.
type Timeline struct {
	backend Backend
	logger  Logger

	mu       sync.RWMutex
	messages []domain.Message
}

func NewTimeline(backend Backend, logger Logger) *Timeline {
	return &Timeline{backend: backend, logger: logger}
}

// Load fetches the conversation's messages and replaces the cache
// wholesale.
func (t *Timeline) Load(ctx context.Context, conversationID string) error {
	messages, err := t.backend.Messages(ctx, conversationID)
	if err != nil {
		return NewFetchError("list_messages", conversationID, err)
	}

	t.mu.Lock()
	t.messages = messages
	t.mu.Unlock()

	t.logger.Debug("timeline loaded", "conversation_id", conversationID, "count", len(messages))
	return nil
}

// Clear empties the timeline without any fetch. Used when the selection
// becomes null.
func (t *Timeline) Clear() {
	t.mu.Lock()
	t.messages = nil
	t.mu.Unlock()
}

// AppendLocal appends a client-constructed message, immediately visible,
// independent of any server confirmation.
func (t *Timeline) AppendLocal(message domain.Message) {
	t.mu.Lock()
	t.messages = append(t.messages, message)
	t.mu.Unlock()
}

// Messages returns a copy of the timeline in order.
func (t *Timeline) Messages() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// newLocalMessage builds an optimistic message with a locally synthesized
// id. The id is never reconciled with the server-assigned one.
func newLocalMessage(conversationID, role, content string) domain.Message {
	return domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
}
