package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charchat/charchat-cli/internal/domain"
	"github.com/charchat/charchat-cli/internal/services"
)

func newTestDirectory(backend *fakeBackend) *Directory {
	return NewDirectory(backend, "u1", "char1", &services.NoOpLogger{})
}

func TestDirectoryLoadReplacesCache(t *testing.T) {
	backend := newFakeBackend()
	backend.conversations = []domain.Conversation{{ID: "c1"}, {ID: "c2"}}
	directory := newTestDirectory(backend)

	require.NoError(t, directory.Load(context.Background()))
	require.Len(t, directory.Conversations(), 2)

	backend.conversations = []domain.Conversation{{ID: "c3"}}
	require.NoError(t, directory.Load(context.Background()))

	conversations := directory.Conversations()
	require.Len(t, conversations, 1)
	assert.Equal(t, "c3", conversations[0].ID)
}

func TestDirectoryLoadError(t *testing.T) {
	backend := newFakeBackend()
	backend.listErr = errors.New("network down")
	directory := newTestDirectory(backend)

	err := directory.Load(context.Background())
	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, ErrTypeFetch, sessErr.Type)
}

func TestDirectoryCreateAppends(t *testing.T) {
	backend := newFakeBackend()
	backend.conversations = []domain.Conversation{{ID: "c1"}}
	directory := newTestDirectory(backend)
	require.NoError(t, directory.Load(context.Background()))

	conversation, err := directory.Create(context.Background(), "New Conversation")
	require.NoError(t, err)
	assert.Equal(t, "New Conversation", conversation.Title)

	conversations := directory.Conversations()
	require.Len(t, conversations, 2)
	assert.Equal(t, conversation.ID, conversations[1].ID)
}

func TestDirectoryDeleteRemovesLocallyOnRemoteFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.conversations = []domain.Conversation{{ID: "c1"}, {ID: "c2"}}
	backend.deleteErr = errors.New("503")
	directory := newTestDirectory(backend)
	require.NoError(t, directory.Load(context.Background()))

	err := directory.Delete(context.Background(), "c1")
	require.Error(t, err)

	// The entry is gone locally even though the server said no.
	conversations := directory.Conversations()
	require.Len(t, conversations, 1)
	assert.Equal(t, "c2", conversations[0].ID)
}

func TestDirectoryUpdateTitle(t *testing.T) {
	backend := newFakeBackend()
	backend.conversations = []domain.Conversation{{ID: "c1", Title: "New Conversation"}}
	directory := newTestDirectory(backend)
	require.NoError(t, directory.Load(context.Background()))

	directory.UpdateTitle("c1", "Proper Title")
	conv, ok := directory.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "Proper Title", conv.Title)

	// Unknown id is a no-op.
	directory.UpdateTitle("missing", "x")
	assert.Len(t, directory.Conversations(), 1)
}
