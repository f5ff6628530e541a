package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Config holds the OpenAI-compatible client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// Client wraps the go-openai SDK with retry and timeout handling.
// A client built without an API key is valid but reports Configured() false.
type Client struct {
	client     *openai.Client
	model      string
	maxRetries int
	configured bool
}

// NewClient creates a chat client. The zero-credential case is not an error:
// the narrative layer uses Configured() to pick deterministic fallbacks.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	sdkCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		sdkCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	sdkCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client:     openai.NewClientWithConfig(sdkCfg),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		configured: cfg.APIKey != "",
	}
}

// Configured reports whether an API key was provided.
func (c *Client) Configured() bool {
	return c.configured
}

// Model returns the configured chat model name.
func (c *Client) Model() string {
	return c.model
}

// Generate runs a single chat completion with exponential-backoff retries.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	if !c.configured {
		return "", errors.New("llm: no API key configured")
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(150*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", errors.New("llm: empty completion response")
			}
			return strings.TrimSpace(resp.Choices[0].Message.Content), nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("llm: generation failed after %d attempts: %w", c.maxRetries, lastErr)
}
