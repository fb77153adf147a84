package ai

import (
	"fmt"

	"groovebot/internal/config"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Provider interface {
	Generate(messages []Message) (string, error)
}

// New picks the chat backend configured by AI_PROVIDER.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.AIProvider {
	case "groq", "":
		return NewGroqProvider(cfg.GroqAPIKey), nil
	case "pollinations":
		return NewPollinationsProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER: %s", cfg.AIProvider)
	}
}
