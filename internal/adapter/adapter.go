// Package adapter provides a unified interface for the LLM providers used
// to judge compression fidelity. The compression pipeline itself never
// calls a model.
package adapter

import (
	"context"
	"fmt"
)

// Provider name constants.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
)

// CompletionRequest holds the parameters for a completion call.
type CompletionRequest struct {
	SystemPrompt string
	UserMessage  string
	Model        string
	MaxTokens    int
}

// ModelInfo describes the adapter's default model.
type ModelInfo struct {
	Name             string
	Provider         string
	MaxContextWindow int
}

// LLMAdapter is the common interface all provider adapters implement.
type LLMAdapter interface {
	// Complete sends a prompt and returns the full response text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Info returns metadata about the adapter/model.
	Info() ModelInfo
}

// New constructs the LLMAdapter for the named provider.
// apiKey may be empty, in which case the provider's env var is used.
func New(provider, apiKey string) (LLMAdapter, error) {
	switch provider {
	case ProviderClaude:
		return NewClaude(apiKey), nil
	case ProviderOpenAI:
		return NewOpenAI(apiKey), nil
	default:
		return nil, fmt.Errorf("adapter: unknown provider %q; valid providers: claude, openai", provider)
	}
}
