// File: cmd/charchat/root.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serverFlag string

// Execute is the entry point called from main.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:           "charchat",
		Short:         "Terminal client for the character-chat service",
		Long:          "charchat signs in to a character-chat server, lists characters and holds conversations with them from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "server base URL (overrides CHARCHAT_SERVER_URL)")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newCharactersCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newExportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
