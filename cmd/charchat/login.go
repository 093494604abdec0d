// File: cmd/charchat/login.go
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charchat/charchat-cli/internal/auth"
)

func newLoginCmd() *cobra.Command {
	var email string
	var useGoogle bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email/password or Google",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if useGoogle {
				return googleLogin(cmd, a)
			}
			return passwordLogin(cmd, a, email)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().BoolVar(&useGoogle, "google", false, "sign in with Google")
	return cmd
}

func passwordLogin(cmd *cobra.Command, a *app, email string) error {
	if email == "" {
		var err error
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	result, err := a.client.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	if err := a.saveSession(auth.NewSession(result.User, result.Token)); err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", result.User.Name, result.User.Email)
	return nil
}

func googleLogin(cmd *cobra.Command, a *app) error {
	flow, err := auth.NewGoogleFlow(a.cfg.GoogleClientID, a.cfg.GoogleClientSecret, a.cfg.OAuthCallbackPort, a.logger)
	if err != nil {
		return err
	}

	idToken, err := flow.SignIn(cmd.Context(), func(url string) error {
		fmt.Println("Open this URL in your browser to sign in:")
		fmt.Println("  " + url)
		return nil
	})
	if err != nil {
		return err
	}

	result, err := a.client.GoogleLogin(cmd.Context(), idToken)
	if err != nil {
		return err
	}
	if err := a.saveSession(auth.NewSession(result.User, result.Token)); err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", result.User.Name, result.User.Email)
	return nil
}

func newRegisterCmd() *cobra.Command {
	var username, email, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			for _, field := range []struct {
				value  *string
				prompt string
			}{
				{&username, "Username: "},
				{&email, "Email: "},
				{&name, "Display name: "},
			} {
				if *field.value == "" {
					if *field.value, err = promptLine(field.prompt); err != nil {
						return err
					}
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			result, err := a.client.Register(cmd.Context(), username, email, password, name)
			if err != nil {
				return err
			}
			if err := a.saveSession(auth.NewSession(result.User, result.Token)); err != nil {
				return err
			}
			fmt.Printf("Registered and signed in as %s\n", result.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if a.session != nil {
				// Best effort: the local session goes away regardless.
				if err := a.client.Logout(cmd.Context()); err != nil {
					a.logger.Warn("server logout failed", "error", err)
				}
			}
			if err := auth.RemoveSession(a.cfg.SessionFile); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("value cannot be empty")
	}
	return line, nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", errors.New("password cannot be empty")
	}
	return string(raw), nil
}
