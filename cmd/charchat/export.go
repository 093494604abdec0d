// File: cmd/charchat/export.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charchat/charchat-cli/internal/domain"
	"github.com/charchat/charchat-cli/internal/services/session"
	"github.com/charchat/charchat-cli/internal/services/transcript"
)

func newExportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export <character-id> <conversation-id>",
		Short: "Write a conversation transcript to an HTML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess, err := a.requireSession()
			if err != nil {
				return err
			}

			characterID, conversationID := args[0], args[1]

			conversations, err := a.client.Conversations(cmd.Context(), sess.User.ID, characterID)
			if err != nil {
				return err
			}
			var conversation domain.Conversation
			found := false
			for _, conv := range conversations {
				if conv.ID == conversationID {
					conversation, found = conv, true
					break
				}
			}
			if !found {
				return fmt.Errorf("conversation %s not found for this character", conversationID)
			}

			messages, err := a.client.Messages(cmd.Context(), conversationID)
			if err != nil {
				return err
			}

			if err := writeTranscript(outFile, conversation, messages); err != nil {
				return err
			}
			fmt.Println("Wrote", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "transcript.html", "output file")
	return cmd
}

// exportSelected writes the REPL's current conversation to path.
func exportSelected(a *app, controller *session.Controller, path string) error {
	conversation, ok := controller.Conversation()
	if !ok {
		return errors.New("no conversation selected")
	}
	return writeTranscript(path, conversation, controller.Messages())
}

func writeTranscript(path string, conversation domain.Conversation, messages []domain.Message) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return transcript.NewRenderer().RenderHTML(f, conversation, messages)
}
