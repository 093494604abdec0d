package transcript

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charchat/charchat-cli/internal/domain"
)

func render(t *testing.T, conversation domain.Conversation, messages []domain.Message) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().RenderHTML(&buf, conversation, messages))
	return buf.String()
}

func TestRenderHTMLEscapesTitle(t *testing.T) {
	out := render(t, domain.Conversation{Title: "<script>alert(1)</script>"}, nil)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestRenderHTMLEmptyTitleFallsBack(t *testing.T) {
	out := render(t, domain.Conversation{}, nil)
	assert.Contains(t, out, "<h1>Conversation</h1>")
}

func TestRenderHTMLUserContentIsEscaped(t *testing.T) {
	messages := []domain.Message{
		{Role: domain.RoleUser, Content: "is 1 < 2 & 3 > 2?"},
	}
	out := render(t, domain.Conversation{Title: "Math"}, messages)
	assert.Contains(t, out, "is 1 &lt; 2 &amp; 3 &gt; 2?")
}

func TestRenderHTMLAssistantMarkdown(t *testing.T) {
	messages := []domain.Message{
		{Role: domain.RoleAssistant, Content: "Here is **bold** and a list:\n\n- one\n- two"},
	}
	out := render(t, domain.Conversation{Title: "Formatting"}, messages)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<li>one</li>")
}

func TestRenderHTMLIncludesMetaAndRoles(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	messages := []domain.Message{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "hello"},
	}
	out := render(t, domain.Conversation{Title: "Greetings", CreatedAt: created}, messages)
	assert.Contains(t, out, created.Format(time.RFC1123))
	assert.Contains(t, out, `<div class="message user">`)
	assert.Contains(t, out, `<div class="message assistant">`)
}
