package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	groqModel    = "llama-3.1-8b-instant"
)

// GroqProvider talks to Groq's OpenAI-compatible chat endpoint.
type GroqProvider struct {
	apiKey string
	client *http.Client
}

func NewGroqProvider(apiKey string) *GroqProvider {
	return &GroqProvider{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

func (p *GroqProvider) Generate(messages []Message) (string, error) {
	if p.apiKey == "" {
		return "", errors.New("GROQ_API_KEY is not set")
	}

	payload := map[string]interface{}{
		"model":       groqModel,
		"messages":    messages,
		"temperature": 0.7,
		"max_tokens":  1024,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, groqEndpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("groq http %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("groq empty choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
