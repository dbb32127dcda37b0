package adapter

import (
	"context"
	"fmt"
	"os"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// claudeAdapter implements LLMAdapter for Anthropic Claude.
type claudeAdapter struct {
	client *anthropic.Client
}

// NewClaude creates a Claude adapter. If apiKey is empty, ANTHROPIC_API_KEY is used.
func NewClaude(apiKey string) LLMAdapter {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return &claudeAdapter{
		client: anthropic.NewClient(apiKey),
	}
}

func (c *claudeAdapter) Info() ModelInfo {
	return ModelInfo{
		Name:             "claude-sonnet-4-5",
		Provider:         ProviderClaude,
		MaxContextWindow: 200000,
	}
}

func (c *claudeAdapter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.Info().Name
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(req.UserMessage)},
			},
		},
		MaxTokens: maxTokens,
		System:    req.SystemPrompt,
	})
	if err != nil {
		return "", fmt.Errorf("claude complete: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", nil
	}
	return resp.Content[0].GetText(), nil
}
