// File: cmd/charchat/characters.go
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCharactersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "characters",
		Short: "List the characters you can chat with",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireSession(); err != nil {
				return err
			}

			characters, err := a.client.Characters(cmd.Context())
			if err != nil {
				return err
			}
			if len(characters) == 0 {
				fmt.Println("No characters yet.")
				return nil
			}

			nameColor := color.New(color.FgCyan, color.Bold)
			for _, character := range characters {
				nameColor.Printf("%s", character.Name)
				fmt.Printf("  (%s)\n", character.ID)
				if character.Description != "" {
					fmt.Printf("    %s\n", truncate(character.Description, 96))
				}
			}
			return nil
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
