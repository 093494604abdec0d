// File: internal/services/transcript/transcript.go

// Package transcript renders a conversation to a standalone HTML page.
// Assistant turns are written as markdown by the server, so they go
// through goldmark; user turns are plain text and are escaped verbatim.
package transcript

import (
	"fmt"
	"html"
	"io"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/charchat/charchat-cli/internal/domain"
)

type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// RenderHTML writes the conversation and its messages to w.
func (r *Renderer) RenderHTML(w io.Writer, conversation domain.Conversation, messages []domain.Message) error {
	title := conversation.Title
	if title == "" {
		title = "Conversation"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n", html.EscapeString(title)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(title)); err != nil {
		return err
	}
	if !conversation.CreatedAt.IsZero() {
		if _, err := fmt.Fprintf(w, "<p class=\"meta\">Started %s</p>\n", conversation.CreatedAt.Format(time.RFC1123)); err != nil {
			return err
		}
	}

	for _, message := range messages {
		if _, err := fmt.Fprintf(w, "<div class=\"message %s\">\n", html.EscapeString(message.Role)); err != nil {
			return err
		}
		if message.Role == domain.RoleAssistant {
			if err := r.md.Convert([]byte(message.Content), w); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, "<p>%s</p>\n", html.EscapeString(message.Content)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</div>\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
