// File: cmd/charchat/chat.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charchat/charchat-cli/internal/domain"
	"github.com/charchat/charchat-cli/internal/services/session"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <character-id>",
		Short: "Open an interactive conversation with a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess, err := a.requireSession()
			if err != nil {
				return err
			}

			controller, err := session.NewController(a.client, sess, args[0], session.DefaultConfig(), a.logger)
			if err != nil {
				return err
			}
			if err := controller.Start(cmd.Context()); err != nil {
				return err
			}

			return runREPL(cmd, a, controller)
		},
	}
}

var (
	userLabel      = color.New(color.FgGreen, color.Bold).SprintFunc()
	assistantLabel = color.New(color.FgCyan, color.Bold).SprintFunc()
	warnText       = color.New(color.FgYellow).SprintFunc()
)

func runREPL(cmd *cobra.Command, a *app, controller *session.Controller) error {
	printTimeline(controller)
	fmt.Println(`Type a message, or /help for commands.`)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(userLabel("you> "))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "/") {
			quit, err := runCommand(cmd, a, controller, line)
			if err != nil {
				fmt.Println(warnText(err.Error()))
			}
			if quit {
				return nil
			}
			continue
		}

		result, err := controller.Send(cmd.Context(), line)
		if err != nil {
			fmt.Println(warnText(err.Error()))
			continue
		}
		if result == nil {
			continue // blank input
		}
		if result.PersistErr != nil {
			fmt.Println(warnText("warning: message shown locally but not confirmed saved"))
		}
		if result.ReplyErr != nil {
			fmt.Println(warnText("no reply: " + result.ReplyErr.Error()))
			continue
		}
		fmt.Printf("%s %s\n", assistantLabel("character>"), result.Reply.Content)
	}
}

// runCommand handles one slash command. It returns true when the REPL
// should exit.
func runCommand(cmd *cobra.Command, a *app, controller *session.Controller, line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/help":
		fmt.Println(`Commands:
  /conversations        list conversations for this character
  /select <n>           switch to conversation n
  /new                  start composing a new conversation
  /delete <n>           delete conversation n
  /export <file.html>   write the current conversation to an HTML file
  /quit                 leave the chat`)

	case "/conversations":
		printConversations(controller)

	case "/select":
		conv, err := conversationByIndex(controller, fields)
		if err != nil {
			return false, err
		}
		if err := controller.Select(cmd.Context(), conv.ID); err != nil {
			return false, err
		}
		printTimeline(controller)

	case "/new":
		controller.ClearSelection()
		fmt.Println("Composing a new conversation; your next message starts it.")

	case "/delete":
		conv, err := conversationByIndex(controller, fields)
		if err != nil {
			return false, err
		}
		if err := controller.Delete(cmd.Context(), conv.ID); err != nil {
			return false, err
		}
		fmt.Printf("Deleted %q.\n", conv.Title)

	case "/export":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /export <file.html>")
		}
		if err := exportSelected(a, controller, fields[1]); err != nil {
			return false, err
		}
		fmt.Println("Wrote", fields[1])

	case "/quit", "/exit":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %s (try /help)", fields[0])
	}
	return false, nil
}

func conversationByIndex(controller *session.Controller, fields []string) (domain.Conversation, error) {
	if len(fields) < 2 {
		return domain.Conversation{}, fmt.Errorf("usage: %s <n>", fields[0])
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("not a number: %s", fields[1])
	}
	conversations := controller.Conversations()
	if n < 1 || n > len(conversations) {
		return domain.Conversation{}, fmt.Errorf("no conversation %d (have %d)", n, len(conversations))
	}
	return conversations[n-1], nil
}

func printConversations(controller *session.Controller) {
	conversations := controller.Conversations()
	if len(conversations) == 0 {
		fmt.Println("No conversations yet.")
		return
	}
	selected := controller.Selected()
	for i, conv := range conversations {
		marker := "  "
		if conv.ID == selected {
			marker = "* "
		}
		fmt.Printf("%s%d. %s", marker, i+1, conv.Title)
		if conv.LastMessageContent != "" {
			fmt.Printf("  | %s", truncate(conv.LastMessageContent, 48))
		}
		fmt.Println()
	}
}

func printTimeline(controller *session.Controller) {
	if controller.Selected() == "" {
		return
	}
	for _, message := range controller.Messages() {
		label := assistantLabel("character>")
		if message.Role == domain.RoleUser {
			label = userLabel("you>")
		}
		fmt.Printf("%s %s\n", label, message.Content)
	}
}
