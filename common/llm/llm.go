package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider constants for LLM provider selection.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ErrInvalidCredential marks a provider rejection of the API key (HTTP 401).
// Callers distinguish it from generic provider failures with errors.Is.
var ErrInvalidCredential = errors.New("invalid provider credential")

// Config holds LLM client configuration.
// The API key comes from a stored user credential, not from service config.
type Config struct {
	Provider string // "openai" or "anthropic"
	APIKey   string // Required: API key for the provider
	BaseURL  string // Optional: custom API endpoint
	Model    string // Model name (e.g., "gpt-4o", "claude-3-5-haiku-latest")
}

// Conversation roles understood by every provider adapter.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a conversation message.
type Message struct {
	Role    string
	Content string
}

// Request contains the message thread for one completion call.
type Request struct {
	Messages    []Message
	MaxTokens   int
	Temperature *float64 // nil = model default, explicit 0 = deterministic
}

// Response contains the textual completion and token usage.
type Response struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// Client issues a single chat completion against a provider.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Model() string
}

// New creates a Client for the configured provider.
func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return newOpenAIClient(cfg)
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// CheckCredential probes the provider's model listing with the given key.
// Returns nil when the key is accepted, ErrInvalidCredential when the
// provider rejects it, and a wrapped transport error otherwise.
func CheckCredential(ctx context.Context, cfg Config) error {
	switch cfg.Provider {
	case ProviderOpenAI:
		return checkOpenAICredential(ctx, cfg)
	case ProviderAnthropic:
		return checkAnthropicCredential(ctx, cfg)
	default:
		return fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
