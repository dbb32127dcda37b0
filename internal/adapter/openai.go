package adapter

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// openaiAdapter implements LLMAdapter for OpenAI.
type openaiAdapter struct {
	client *openai.Client
}

// NewOpenAI creates an OpenAI adapter. If apiKey is empty, OPENAI_API_KEY is used.
func NewOpenAI(apiKey string) LLMAdapter {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return &openaiAdapter{
		client: openai.NewClient(apiKey),
	}
}

func (o *openaiAdapter) Info() ModelInfo {
	return ModelInfo{
		Name:             "gpt-4o",
		Provider:         ProviderOpenAI,
		MaxContextWindow: 128000,
	}
}

func (o *openaiAdapter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = o.Info().Name
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	messages := []openai.ChatCompletionMessage{}
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserMessage,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai complete: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
