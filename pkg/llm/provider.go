package llm

import (
	"context"
	"encoding/json"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	JSON        bool   // Ask the backend for a JSON-only response
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithJSONResponse() Option {
	return func(o *Options) {
		o.JSON = true
	}
}

func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// ContentProvider is what the services consume. Every failure it returns is a
// provider failure: transport errors, non-2xx answers, empty text, malformed
// JSON when structure was asked for, and timeouts.
type ContentProvider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateStructured(ctx context.Context, prompt string) (json.RawMessage, error)
	Chat(ctx context.Context, history []Message) (string, error)
}
