// File: internal/services/session/directory.go
package session

import (
	"context"
	"sync"

	"github.com/charchat/charchat-cli/internal/domain"
)

// Directory holds the in-memory set of conversations for one
// user/character pair. The server stays authoritative: Load replaces the
// cache wholesale, and only UpdateTitle mutates a record locally.
type Directory struct {
	backend     Backend
	userID      string
	characterID string
	logger      Logger

	mu            sync.RWMutex
	conversations []domain.Conversation
}

func NewDirectory(backend Backend, userID, characterID string, logger Logger) *Directory {
	return &Directory{
		backend:     backend,
		userID:      userID,
		characterID: characterID,
		logger:      logger,
	}
}

// Load fetches all conversations for the pair and replaces the cache.
func (d *Directory) Load(ctx context.Context) error {
	conversations, err := d.backend.Conversations(ctx, d.userID, d.characterID)
	if err != nil {
		return NewFetchError("list_conversations", "", err)
	}

	d.mu.Lock()
	d.conversations = conversations
	d.mu.Unlock()

	d.logger.Debug("conversation directory loaded", "count", len(conversations))
	return nil
}

// Conversations returns a copy of the cached list.
func (d *Directory) Conversations() []domain.Conversation {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.Conversation, len(d.conversations))
	copy(out, d.conversations)
	return out
}

// Get looks a conversation up by id in the cache.
func (d *Directory) Get(conversationID string) (domain.Conversation, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, conv := range d.conversations {
		if conv.ID == conversationID {
			return conv, true
		}
	}
	return domain.Conversation{}, false
}

// Create creates a conversation server-side and appends the authoritative
// record to the cache.
func (d *Directory) Create(ctx context.Context, title string) (*domain.Conversation, error) {
	conversation, err := d.backend.CreateConversation(ctx, d.userID, d.characterID, title)
	if err != nil {
		return nil, NewCreateError("create_conversation", err)
	}

	d.mu.Lock()
	d.conversations = append(d.conversations, *conversation)
	d.mu.Unlock()

	d.logger.Info("conversation created", "conversation_id", conversation.ID)
	return conversation, nil
}

// Delete removes the conversation server-side. The local entry is removed
// regardless of the remote outcome, so a delete is idempotent from the
// caller's perspective.
func (d *Directory) Delete(ctx context.Context, conversationID string) error {
	err := d.backend.DeleteConversation(ctx, conversationID)

	d.mu.Lock()
	kept := d.conversations[:0]
	for _, conv := range d.conversations {
		if conv.ID != conversationID {
			kept = append(kept, conv)
		}
	}
	d.conversations = kept
	d.mu.Unlock()

	if err != nil {
		return NewDeleteError(conversationID, err)
	}
	d.logger.Info("conversation deleted", "conversation_id", conversationID)
	return nil
}

// UpdateTitle mutates a cached conversation's title. Local only; driven
// by the title-generation side effect, never by a re-fetch.
func (d *Directory) UpdateTitle(conversationID, title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.conversations {
		if d.conversations[i].ID == conversationID {
			d.conversations[i].Title = title
			return
		}
	}
}
