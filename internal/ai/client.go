package ai

import (
	"context"
	"errors"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// Generator produces completions for a prompt. Satisfied by Client; tests
// substitute a stub.
type Generator interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Client wraps the Anthropic messages API.
type Client struct {
	api   *anthropic.Client
	model string
}

// NewClient constructs a Client for the given API key and model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		api:   anthropic.NewClient(apiKey),
		model: model,
	}
}

// Complete sends prompt as a single user message and returns the first text
// block of the response.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.api.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create messages: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			return *block.Text, nil
		}
	}
	return "", errors.New("no text content in model response")
}

var _ Generator = (*Client)(nil)
