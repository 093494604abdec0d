// File: internal/services/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Client talks to the character-chat server over its REST API. All state
// lives server-side; the client holds nothing but the session token.
type Client struct {
	config *Config
	client *http.Client
	logger Logger

	mu    sync.RWMutex
	token string
}

var _ Service = (*Client)(nil)

func NewClient(config *Config, logger Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	c := &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
		token:  config.Token,
	}

	logger.Debug("api client initialized", "base_url", config.BaseURL)
	return c, nil
}

// SetToken installs the session token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// call performs one request against the server. No retries: a failed call
// surfaces immediately as an *APIError of the given type. When out is
// non-nil the response body is decoded into it.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out interface{}, t ErrorType, operation string) error {
	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Type: t, Operation: operation, Message: "invalid payload", Cause: err}
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &APIError{Type: t, Operation: operation, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("request failed", "operation", operation, "error", err)
		return NewRequestError(t, operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("server returned error", "operation", operation, "status", resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized {
			return NewStatusError(ErrTypeAuth, operation, resp.StatusCode, string(responseBody))
		}
		return NewStatusError(t, operation, resp.StatusCode, string(responseBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Type: t, Operation: operation, Message: "failed to decode response", Cause: err}
		}
	}
	return nil
}
