package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charchat/charchat-cli/internal/auth"
	"github.com/charchat/charchat-cli/internal/domain"
	"github.com/charchat/charchat-cli/internal/services"
)

// fakeBackend records every call in order and lets tests script failures
// per operation.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	conversations []domain.Conversation
	messages      map[string][]domain.Message
	reply         string
	title         string

	listErr     error
	createErr   error
	deleteErr   error
	messagesErr error
	persistErr  error
	replyErr    error
	titleErr    error

	// When non-nil, RequestReply signals replyStarted and then blocks
	// until replyRelease is closed.
	replyStarted chan struct{}
	replyRelease chan struct{}

	nextConv int
	nextMsg  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		messages: map[string][]domain.Message{},
		reply:    "Hi there",
		title:    "Generated Title",
	}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeBackend) Conversations(ctx context.Context, userID, characterID string) ([]domain.Conversation, error) {
	f.record("list_conversations")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.conversations, nil
}

func (f *fakeBackend) CreateConversation(ctx context.Context, userID, characterID, title string) (*domain.Conversation, error) {
	f.record("create_conversation")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextConv++
	conv := domain.Conversation{
		ID:          fmt.Sprintf("c%d", f.nextConv),
		UserID:      userID,
		CharacterID: characterID,
		Title:       title,
		CreatedAt:   time.Now().UTC(),
	}
	return &conv, nil
}

func (f *fakeBackend) DeleteConversation(ctx context.Context, conversationID string) error {
	f.record("delete_conversation")
	return f.deleteErr
}

func (f *fakeBackend) Messages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	f.record("list_messages")
	if f.messagesErr != nil {
		return nil, f.messagesErr
	}
	return f.messages[conversationID], nil
}

func (f *fakeBackend) CreateMessage(ctx context.Context, conversationID, role, content string) (*domain.Message, error) {
	f.record("create_message")
	if f.persistErr != nil {
		return nil, f.persistErr
	}
	f.nextMsg++
	return &domain.Message{
		ID:             fmt.Sprintf("srv-m%d", f.nextMsg),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func (f *fakeBackend) RequestReply(ctx context.Context, conversationID string) (string, error) {
	f.record("request_reply")
	if f.replyStarted != nil {
		f.replyStarted <- struct{}{}
		<-f.replyRelease
	}
	if f.replyErr != nil {
		return "", f.replyErr
	}
	return f.reply, nil
}

func (f *fakeBackend) GenerateTitle(ctx context.Context, conversationID string) (string, error) {
	f.record("generate_title")
	if f.titleErr != nil {
		return "", f.titleErr
	}
	return f.title, nil
}

func newTestController(t *testing.T, backend *fakeBackend) *Controller {
	t.Helper()
	sess := auth.NewSession(domain.User{ID: "u1", Name: "Test User"}, "token")
	controller, err := NewController(backend, sess, "char1", DefaultConfig(), &services.NoOpLogger{})
	require.NoError(t, err)
	return controller
}

func TestSendCreatesConversationWhenNoneSelected(t *testing.T) {
	backend := newFakeBackend()
	controller := newTestController(t, backend)

	result, err := controller.Send(context.Background(), "Hello")
	require.NoError(t, err)
	require.NotNil(t, result)

	// Exactly one create, one persist, one reply, in that order.
	require.Equal(t, []string{"create_conversation", "create_message", "request_reply"},
		backend.callLog()[:3])

	assert.True(t, result.NewConversation)
	assert.Equal(t, "c1", controller.Selected())

	messages := controller.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, "Hello", messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
	assert.Equal(t, "Hi there", messages[1].Content)

	controller.WaitTitle()
	conv, ok := controller.Conversation()
	require.True(t, ok)
	assert.Equal(t, "Generated Title", conv.Title)
}

func TestSendEmptyInputIsNoOp(t *testing.T) {
	backend := newFakeBackend()
	controller := newTestController(t, backend)

	for _, input := range []string{"", "   ", "\t\n "} {
		result, err := controller.Send(context.Background(), input)
		require.NoError(t, err)
		assert.Nil(t, result)
	}

	assert.Empty(t, backend.callLog())
	assert.False(t, controller.Sending())
	assert.Empty(t, controller.Messages())
}

func TestSendUsesSelectedConversation(t *testing.T) {
	backend := newFakeBackend()
	backend.conversations = []domain.Conversation{{ID: "c9", Title: "Existing"}}
	backend.messages["c9"] = []domain.Message{
		{ID: "m1", ConversationID: "c9", Role: domain.RoleUser, Content: "earlier"},
		{ID: "m2", ConversationID: "c9", Role: domain.RoleAssistant, Content: "before"},
	}
	controller := newTestController(t, backend)
	require.NoError(t, controller.Start(context.Background()))
	require.Equal(t, "c9", controller.Selected())

	result, err := controller.Send(context.Background(), "again")
	require.NoError(t, err)
	assert.False(t, result.NewConversation)
	assert.NotContains(t, backend.callLog(), "create_conversation")

	// Prior messages, then the new user message, then the reply.
	messages := controller.Messages()
	require.Len(t, messages, 4)
	assert.Equal(t, "earlier", messages[0].Content)
	assert.Equal(t, "again", messages[2].Content)
	assert.Equal(t, "Hi there", messages[3].Content)
}

func TestSendAbortsWhenConversationCreateFails(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = errors.New("boom")
	controller := newTestController(t, backend)

	result, err := controller.Send(context.Background(), "Hello")
	require.Error(t, err)
	assert.Nil(t, result)

	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, ErrTypeCreate, sessErr.Type)

	assert.Equal(t, []string{"create_conversation"}, backend.callLog())
	assert.Empty(t, controller.Selected())
	assert.Empty(t, controller.Messages())
	assert.False(t, controller.Sending())
}

func TestSendToleratesPersistFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.persistErr = errors.New("save failed")
	controller := newTestController(t, backend)

	result, err := controller.Send(context.Background(), "Hello")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Error(t, result.PersistErr)

	// The optimistic append stays and the reply is still requested.
	assert.Contains(t, backend.callLog(), "request_reply")
	messages := controller.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello", messages[0].Content)
	assert.Equal(t, "Hi there", messages[1].Content)
}

func TestSendToleratesReplyFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.replyErr = errors.New("500 from model")
	controller := newTestController(t, backend)

	result, err := controller.Send(context.Background(), "Hello")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Error(t, result.ReplyErr)
	assert.Nil(t, result.Reply)

	messages := controller.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.False(t, controller.Sending())
}

func TestSendReentryReturnsErrSendInFlight(t *testing.T) {
	backend := newFakeBackend()
	backend.replyStarted = make(chan struct{})
	backend.replyRelease = make(chan struct{})
	controller := newTestController(t, backend)

	done := make(chan error, 1)
	go func() {
		_, err := controller.Send(context.Background(), "first")
		done <- err
	}()

	<-backend.replyStarted
	assert.True(t, controller.Sending())

	_, err := controller.Send(context.Background(), "second")
	require.ErrorIs(t, err, ErrSendInFlight)

	close(backend.replyRelease)
	require.NoError(t, <-done)
	assert.False(t, controller.Sending())
}

func TestDeleteSelectedClearsSelectionAndTimeline(t *testing.T) {
	backend := newFakeBackend()
	backend.conversations = []domain.Conversation{{ID: "c1"}, {ID: "c2"}}
	backend.messages["c1"] = []domain.Message{{ID: "m1", Role: domain.RoleUser, Content: "hi"}}
	controller := newTestController(t, backend)
	require.NoError(t, controller.Start(context.Background()))
	require.Equal(t, "c1", controller.Selected())
	require.NotEmpty(t, controller.Messages())

	require.NoError(t, controller.Delete(context.Background(), "c1"))

	assert.Empty(t, controller.Selected())
	assert.Empty(t, controller.Messages())
	require.Len(t, controller.Conversations(), 1)
	assert.Equal(t, "c2", controller.Conversations()[0].ID)
}

func TestDeleteOtherLeavesSelectionAndTimeline(t *testing.T) {
	backend := newFakeBackend()
	backend.conversations = []domain.Conversation{{ID: "c1"}, {ID: "c2"}}
	backend.messages["c1"] = []domain.Message{{ID: "m1", Role: domain.RoleUser, Content: "hi"}}
	controller := newTestController(t, backend)
	require.NoError(t, controller.Start(context.Background()))

	require.NoError(t, controller.Delete(context.Background(), "c2"))

	assert.Equal(t, "c1", controller.Selected())
	assert.Len(t, controller.Messages(), 1)
}

func TestStartSelectsFirstConversation(t *testing.T) {
	backend := newFakeBackend()
	backend.conversations = []domain.Conversation{{ID: "c5"}, {ID: "c6"}}
	backend.messages["c5"] = []domain.Message{{ID: "m1", Role: domain.RoleAssistant, Content: "welcome back"}}
	controller := newTestController(t, backend)

	require.NoError(t, controller.Start(context.Background()))

	assert.Equal(t, "c5", controller.Selected())
	require.Len(t, controller.Messages(), 1)
	assert.Equal(t, "welcome back", controller.Messages()[0].Content)
}

func TestStartWithNoConversationsLeavesSelectionNull(t *testing.T) {
	backend := newFakeBackend()
	controller := newTestController(t, backend)

	require.NoError(t, controller.Start(context.Background()))

	assert.Empty(t, controller.Selected())
	assert.NotContains(t, backend.callLog(), "list_messages")
}

func TestTitleFailureKeepsPlaceholder(t *testing.T) {
	backend := newFakeBackend()
	backend.titleErr = errors.New("title service down")
	controller := newTestController(t, backend)

	_, err := controller.Send(context.Background(), "Hello")
	require.NoError(t, err)
	controller.WaitTitle()

	conv, ok := controller.Conversation()
	require.True(t, ok)
	assert.Equal(t, "New Conversation", conv.Title)
}

func TestSelectUnknownConversation(t *testing.T) {
	backend := newFakeBackend()
	controller := newTestController(t, backend)

	err := controller.Select(context.Background(), "nope")
	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, ErrTypeNotFound, sessErr.Type)
}
