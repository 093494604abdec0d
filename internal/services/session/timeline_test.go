package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charchat/charchat-cli/internal/domain"
	"github.com/charchat/charchat-cli/internal/services"
)

func TestTimelineLoadReplacesWholesale(t *testing.T) {
	backend := newFakeBackend()
	backend.messages["c1"] = []domain.Message{{ID: "m1", Content: "one"}}
	backend.messages["c2"] = []domain.Message{{ID: "m2", Content: "two"}, {ID: "m3", Content: "three"}}
	timeline := NewTimeline(backend, &services.NoOpLogger{})

	require.NoError(t, timeline.Load(context.Background(), "c1"))
	timeline.AppendLocal(domain.Message{ID: "local", Content: "unsaved"})

	// Switching conversations drops the local append with everything else.
	require.NoError(t, timeline.Load(context.Background(), "c2"))
	messages := timeline.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "two", messages[0].Content)
}

func TestTimelineLoadError(t *testing.T) {
	backend := newFakeBackend()
	backend.messagesErr = errors.New("timeout")
	timeline := NewTimeline(backend, &services.NoOpLogger{})

	err := timeline.Load(context.Background(), "c1")
	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, ErrTypeFetch, sessErr.Type)
	assert.Equal(t, "c1", sessErr.ConversationID)
}

func TestTimelineAppendPreservesInsertionOrder(t *testing.T) {
	timeline := NewTimeline(newFakeBackend(), &services.NoOpLogger{})

	now := time.Now().UTC()
	for _, id := range []string{"a", "b", "c"} {
		timeline.AppendLocal(domain.Message{ID: id, CreatedAt: now})
	}

	messages := timeline.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "a", messages[0].ID)
	assert.Equal(t, "b", messages[1].ID)
	assert.Equal(t, "c", messages[2].ID)
}

func TestTimelineClear(t *testing.T) {
	timeline := NewTimeline(newFakeBackend(), &services.NoOpLogger{})
	timeline.AppendLocal(domain.Message{ID: "m1"})

	timeline.Clear()
	assert.Empty(t, timeline.Messages())
}

func TestNewLocalMessage(t *testing.T) {
	first := newLocalMessage("c1", domain.RoleUser, "hello")
	second := newLocalMessage("c1", domain.RoleUser, "hello")

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "c1", first.ConversationID)
	assert.Equal(t, domain.RoleUser, first.Role)
	assert.WithinDuration(t, time.Now().UTC(), first.CreatedAt, time.Minute)
}
