// Package chat keeps a short per-user conversation with the configured
// AI provider. History is bounded so a chatty user cannot grow requests
// without limit.
package chat

import (
	"fmt"
	"strings"
	"sync"

	"groovebot/internal/ai"
)

const historyLimit = 10

type Manager struct {
	provider ai.Provider
	prefix   string

	mu            sync.Mutex
	conversations map[string][]ai.Message
}

func NewManager(provider ai.Provider, commandPrefix string) *Manager {
	return &Manager{
		provider:      provider,
		prefix:        commandPrefix,
		conversations: make(map[string][]ai.Message),
	}
}

func (m *Manager) systemPrompt() ai.Message {
	return ai.Message{
		Role: "system",
		Content: fmt.Sprintf(
			"You are a helpful Discord bot. Keep replies short and conversational. "+
				"Users can run bot commands with the %q prefix; point them to %shelp when they ask what you can do.",
			m.prefix, m.prefix,
		),
	}
}

// Reply appends the user's message to their conversation, asks the
// provider for a completion and records the answer.
func (m *Manager) Reply(userID, text string) (string, error) {
	m.mu.Lock()
	history := append([]ai.Message(nil), m.conversations[userID]...)
	m.mu.Unlock()

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, m.systemPrompt())
	messages = append(messages, history...)
	messages = append(messages, ai.Message{Role: "user", Content: text})

	answer, err := m.provider.Generate(messages)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)

	m.mu.Lock()
	conv := append(m.conversations[userID],
		ai.Message{Role: "user", Content: text},
		ai.Message{Role: "assistant", Content: answer},
	)
	if len(conv) > historyLimit {
		conv = conv[len(conv)-historyLimit:]
	}
	m.conversations[userID] = conv
	m.mu.Unlock()

	return answer, nil
}

// Clear forgets a user's conversation.
func (m *Manager) Clear(userID string) {
	m.mu.Lock()
	delete(m.conversations, userID)
	m.mu.Unlock()
}

// HistoryLen reports the number of stored messages for a user.
func (m *Manager) HistoryLen(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conversations[userID])
}
