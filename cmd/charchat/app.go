// File: cmd/charchat/app.go
package main

import (
	"errors"

	"github.com/charchat/charchat-cli/internal/auth"
	"github.com/charchat/charchat-cli/internal/config"
	"github.com/charchat/charchat-cli/internal/services"
	"github.com/charchat/charchat-cli/internal/services/api"
)

// app wires the pieces every command needs: config, logger, api client
// and the saved session, if any.
type app struct {
	cfg     *config.Config
	logger  services.Logger
	client  *api.Client
	session *auth.Session // nil when not signed in
}

func newApp() (*app, error) {
	cfg := config.Load()
	logger := services.NewLogger("charchat")

	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}

	apiConfig := api.DefaultConfig()
	apiConfig.BaseURL = cfg.ServerURL

	client, err := api.NewClient(apiConfig, logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, client: client}

	// A missing or unreadable session file just means "not signed in".
	if sess, err := auth.LoadSession(cfg.SessionFile); err == nil {
		a.session = sess
		client.SetToken(sess.Token)
	}

	return a, nil
}

// requireSession returns the saved session or an error telling the user
// to log in.
func (a *app) requireSession() (*auth.Session, error) {
	if a.session == nil {
		return nil, errors.New("not signed in; run `charchat login` first")
	}
	if a.session.Expired() {
		return nil, errors.New("session expired; run `charchat login` again")
	}
	return a.session, nil
}

func (a *app) saveSession(sess *auth.Session) error {
	a.session = sess
	a.client.SetToken(sess.Token)
	return sess.Save(a.cfg.SessionFile)
}
