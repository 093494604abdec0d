// File: internal/services/session/config.go
package session

import "fmt"

type Config struct {
	// PlaceholderTitle is given to a conversation created on first send,
	// until the generated title replaces it.
	PlaceholderTitle string

	// TitleMaxLen caps generated titles before they enter the directory.
	TitleMaxLen int
}

func DefaultConfig() *Config {
	return &Config{
		PlaceholderTitle: "New Conversation",
		TitleMaxLen:      100,
	}
}

func (c *Config) Validate() error {
	if c.PlaceholderTitle == "" {
		return fmt.Errorf("placeholder_title is required")
	}
	if c.TitleMaxLen <= 0 {
		return fmt.Errorf("title_max_len must be positive")
	}
	return nil
}
