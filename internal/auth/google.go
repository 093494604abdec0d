// File: internal/auth/google.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Logger defines the logging interface used by the Google sign-in flow.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// GoogleFlow runs an authorization-code sign-in against Google with a
// loopback callback, yielding an ID token the server exchanges for a
// session at /auth/google.
type GoogleFlow struct {
	oauth  *oauth2.Config
	port   int
	logger Logger
}

func NewGoogleFlow(clientID, clientSecret string, port int, logger Logger) (*GoogleFlow, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("google client id and secret are required")
	}
	if port <= 0 {
		return nil, errors.New("callback port must be positive")
	}
	return &GoogleFlow{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  fmt.Sprintf("http://localhost:%d/oauth/callback", port),
			Scopes:       []string{"openid", "email", "profile"},
		},
		port:   port,
		logger: logger,
	}, nil
}

type callbackResult struct {
	code string
	err  error
}

// SignIn starts the loopback callback server, hands the authorization URL
// to open (normally a browser launcher), and blocks until the callback or
// ctx settles. It returns the Google ID token.
func (f *GoogleFlow) SignIn(ctx context.Context, open func(url string) error) (string, error) {
	state, err := randomState()
	if err != nil {
		return "", err
	}

	results := make(chan callbackResult, 1)

	router := mux.NewRouter()
	router.Use(f.requestLogging)
	router.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		switch {
		case query.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: errors.New("oauth state mismatch")}
		case query.Get("error") != "":
			http.Error(w, "sign-in was denied", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("google sign-in denied: %s", query.Get("error"))}
		case query.Get("code") == "":
			http.Error(w, "missing code", http.StatusBadRequest)
			results <- callbackResult{err: errors.New("callback carried no authorization code")}
		default:
			fmt.Fprintln(w, "Signed in. You can close this tab and return to the terminal.")
			results <- callbackResult{code: query.Get("code")}
		}
	}).Methods(http.MethodGet)

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", f.port))
	if err != nil {
		return "", fmt.Errorf("could not bind oauth callback port: %w", err)
	}
	server := &http.Server{Handler: router}
	go func() { _ = server.Serve(listener) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	authURL := f.oauth.AuthCodeURL(state)
	f.logger.Info("waiting for google sign-in", "url", authURL)
	if err := open(authURL); err != nil {
		return "", err
	}

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if result.err != nil {
		return "", result.err
	}

	token, err := f.oauth.Exchange(ctx, result.code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w", err)
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", errors.New("google token response carried no id_token")
	}
	return idToken, nil
}

// requestLogging logs each callback request and its duration.
func (f *GoogleFlow) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		f.logger.Debug("callback request",
			"method", r.Method,
			"uri", r.RequestURI,
			"duration", time.Since(start).String(),
		)
	})
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
