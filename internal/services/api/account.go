// File: internal/services/api/account.go
package api

import (
	"context"
	"net/http"

	"github.com/charchat/charchat-cli/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// Login authenticates with email and password. On success the returned
// token is installed on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.call(ctx, http.MethodPost, "/auth/login", nil,
		loginRequest{Email: email, Password: password}, &result, ErrTypeAuth, "login")
	if err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

func (c *Client) Register(ctx context.Context, username, email, password, name string) (*AuthResult, error) {
	var result AuthResult
	err := c.call(ctx, http.MethodPost, "/auth/register", nil,
		registerRequest{Username: username, Email: email, Password: password, Name: name},
		&result, ErrTypeAuth, "register")
	if err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// GoogleLogin exchanges a Google ID token for a server session.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	var result AuthResult
	err := c.call(ctx, http.MethodPost, "/auth/google", nil,
		googleLoginRequest{IDToken: idToken}, &result, ErrTypeAuth, "google_login")
	if err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.call(ctx, http.MethodGet, "/auth/logout", nil, nil, nil, ErrTypeAuth, "logout"); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// CurrentUser restores the account behind the saved session token.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.call(ctx, http.MethodGet, "/api/user", nil, nil, &user, ErrTypeAuth, "current_user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// Characters lists the characters shown on the dashboard.
func (c *Client) Characters(ctx context.Context) ([]domain.Character, error) {
	var characters []domain.Character
	if err := c.call(ctx, http.MethodGet, "/characters", nil, nil, &characters, ErrTypeFetch, "list_characters"); err != nil {
		return nil, err
	}
	return characters, nil
}
