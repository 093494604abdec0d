// File: internal/auth/session.go
package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/charchat/charchat-cli/internal/domain"
)

// Session is the explicit authentication state passed to anything that
// needs the signed-in user.
type Session struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func NewSession(user domain.User, token string) *Session {
	return &Session{User: user, Token: token}
}

// ExpiresAt reads the expiry claim out of the session token without
// verifying the signature. Only the server can verify it; the client
// just wants to know when to prompt for a fresh login.
func (s *Session) ExpiresAt() (time.Time, bool) {
	token, _, err := jwt.NewParser().ParseUnverified(s.Token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an expiry in the past.
// Tokens without a readable expiry are treated as live; the server will
// reject them if they are not.
func (s *Session) Expired() bool {
	exp, ok := s.ExpiresAt()
	return ok && exp.Before(time.Now())
}

// Save writes the session to path with user-only permissions.
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadSession reads a previously saved session. A missing file is an
// error the caller turns into "please log in".
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, errors.New("saved session has no token")
	}
	return &s, nil
}

// RemoveSession deletes the saved session file if it exists.
func RemoveSession(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
