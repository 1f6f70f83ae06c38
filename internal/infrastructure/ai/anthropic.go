// Package ai implements the outbound LLM client against the Anthropic
// Messages API.
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

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	maxTokens      = 1024
	requestTimeout = 30 * time.Second
)

// Config captures the settings for the Anthropic client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint. Tests point it at a local server.
	BaseURL string
}

// AnthropicClient calls the Anthropic Messages API over plain HTTP.
type AnthropicClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewAnthropicClient(cfg Config) *AnthropicClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &AnthropicClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one system-prompted user message and returns the model's
// text reply.
func (c *AnthropicClient) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("anthropic %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("anthropic %d", resp.StatusCode)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("anthropic: empty response content")
	}
	return parsed.Content[0].Text, nil
}
