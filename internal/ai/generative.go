package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGenerativeModel = "gpt-4o-mini"

// GenerativeClient calls an OpenAI-compatible chat completions endpoint for
// plot suggestions and last-resort answers.
type GenerativeClient struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

// NewGenerativeClient creates a generative text client. An empty model falls
// back to the default.
func NewGenerativeClient(endpoint, apiKey, model string) *GenerativeClient {
	if model == "" {
		model = defaultGenerativeModel
	}
	return &GenerativeClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate produces answer text for the prompt. extra carries optional
// context (catalog facts, user history) appended as a system message.
func (c *GenerativeClient) Generate(ctx context.Context, prompt, extra string) (string, error) {
	messages := []chatMessage{
		{Role: "system", Content: "You are a friendly movie assistant. Keep answers short."},
	}
	if extra != "" {
		messages = append(messages, chatMessage{Role: "system", Content: extra})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("generative API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("generative API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
