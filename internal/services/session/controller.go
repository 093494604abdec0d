// File: internal/services/session/controller.go
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/charchat/charchat-cli/internal/auth"
	"github.com/charchat/charchat-cli/internal/domain"
)

// Controller mediates between the conversation directory, the message
// timeline and the selection for one character view. All mutations of the
// two caches flow through it.
//
// Selection is a single nullable conversation id: empty means "no
// conversation chosen; the next send creates one".
type Controller struct {
	backend   Backend
	config    *Config
	session   *auth.Session
	directory *Directory
	timeline  *Timeline
	logger    Logger

	mu       sync.Mutex
	selected string
	sending  bool

	titleWG sync.WaitGroup
}

func NewController(backend Backend, sess *auth.Session, characterID string, config *Config, logger Logger) (*Controller, error) {
	if backend == nil {
		return nil, NewValidationError("constructor", "backend is required")
	}
	if sess == nil {
		return nil, NewValidationError("constructor", "session is required")
	}
	if characterID == "" {
		return nil, NewValidationError("constructor", "character id is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewValidationError("config", err.Error())
	}

	return &Controller{
		backend:   backend,
		config:    config,
		session:   sess,
		directory: NewDirectory(backend, sess.User.ID, characterID, logger),
		timeline:  NewTimeline(backend, logger),
		logger:    logger,
	}, nil
}

// Start loads the conversation directory and, when it is non-empty,
// selects the first conversation and loads its messages.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.directory.Load(ctx); err != nil {
		return err
	}
	conversations := c.directory.Conversations()
	if len(conversations) == 0 {
		return nil
	}
	return c.Select(ctx, conversations[0].ID)
}

// Select makes the conversation active and refreshes the timeline to
// match before returning, so stale messages are never visible against the
// new selection.
func (c *Controller) Select(ctx context.Context, conversationID string) error {
	if _, ok := c.directory.Get(conversationID); !ok {
		return NewNotFoundError("select", conversationID)
	}
	if err := c.timeline.Load(ctx, conversationID); err != nil {
		return err
	}
	c.mu.Lock()
	c.selected = conversationID
	c.mu.Unlock()
	return nil
}

// ClearSelection returns to the "compose into a new conversation" state.
// Selection is cleared before the timeline so no render can pair old
// messages with a null selection.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selected = ""
	c.mu.Unlock()
	c.timeline.Clear()
}

// Selected returns the active conversation id, or "" for none.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Sending reports whether a send pipeline is currently in flight.
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// Conversations returns the cached directory.
func (c *Controller) Conversations() []domain.Conversation {
	return c.directory.Conversations()
}

// Messages returns the timeline of the selected conversation.
func (c *Controller) Messages() []domain.Message {
	return c.timeline.Messages()
}

// Conversation returns the cached record of the selected conversation.
func (c *Controller) Conversation() (domain.Conversation, bool) {
	return c.directory.Get(c.Selected())
}

// Delete removes a conversation. When it was the selected one, the
// selection is cleared first and the timeline second, in that order.
func (c *Controller) Delete(ctx context.Context, conversationID string) error {
	err := c.directory.Delete(ctx, conversationID)
	if c.Selected() == conversationID {
		c.ClearSelection()
	}
	return err
}

// Send runs the send pipeline for one user-authored message:
//
//  1. empty input (after trimming) is a no-op
//  2. with no selection, create a conversation first; on failure the
//     pipeline aborts before anything else happens
//  3. append the user's message to the timeline optimistically
//  4. persist it; failure is tolerated and reported in the result
//  5. request the assistant reply and append it; failure is tolerated
//  6. for a conversation created in step 2, request a generated title in
//     the background
//
// Only one send may be in flight at a time; re-entry fails with
// ErrSendInFlight. The user message always precedes the reply in the
// timeline because step 3 completes before step 5 starts.
func (c *Controller) Send(ctx context.Context, text string) (*SendResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return nil, ErrSendInFlight
	}
	c.sending = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	result := &SendResult{ConversationID: c.Selected()}

	if result.ConversationID == "" {
		conversation, err := c.directory.Create(ctx, c.config.PlaceholderTitle)
		if err != nil {
			c.logger.Error("failed to create conversation", "error", err)
			return nil, err
		}
		c.mu.Lock()
		c.selected = conversation.ID
		c.mu.Unlock()
		result.ConversationID = conversation.ID
		result.NewConversation = true
	}

	result.UserMessage = newLocalMessage(result.ConversationID, domain.RoleUser, trimmed)
	c.timeline.AppendLocal(result.UserMessage)

	if saved, err := c.backend.CreateMessage(ctx, result.ConversationID, domain.RoleUser, trimmed); err != nil {
		// Tolerated: the message stays visible locally even though the
		// server never confirmed it.
		result.PersistErr = err
		c.logger.Error("failed to persist user message",
			"conversation_id", result.ConversationID, "error", err)
	} else {
		c.logger.Debug("user message persisted",
			"local_id", result.UserMessage.ID, "server_id", saved.ID)
	}

	if replyText, err := c.backend.RequestReply(ctx, result.ConversationID); err != nil {
		result.ReplyErr = err
		c.logger.Error("failed to get assistant reply",
			"conversation_id", result.ConversationID, "error", err)
	} else {
		reply := newLocalMessage(result.ConversationID, domain.RoleAssistant, replyText)
		c.timeline.AppendLocal(reply)
		result.Reply = &reply
	}

	if result.NewConversation {
		c.titleWG.Add(1)
		go c.generateTitle(context.WithoutCancel(ctx), result.ConversationID)
	}

	return result, nil
}

// generateTitle runs the title-generation side effect for a conversation
// created on first send. Non-fatal: on failure the placeholder stays.
func (c *Controller) generateTitle(ctx context.Context, conversationID string) {
	defer c.titleWG.Done()

	title, err := c.backend.GenerateTitle(ctx, conversationID)
	if err != nil {
		c.logger.Warn("title generation failed", "conversation_id", conversationID, "error", err)
		return
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	if len(title) > c.config.TitleMaxLen {
		title = title[:c.config.TitleMaxLen]
	}
	c.directory.UpdateTitle(conversationID, title)
	c.logger.Info("conversation title updated", "conversation_id", conversationID)
}

// WaitTitle blocks until any in-flight title generation settles.
func (c *Controller) WaitTitle() {
	c.titleWG.Wait()
}
