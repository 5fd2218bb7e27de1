package factory

import (
	"fmt"
	"strings"
	"time"

	"learnpath-be/pkg/llm"
	"learnpath-be/pkg/llm/gemini"
	"learnpath-be/pkg/llm/huggingface"
	"learnpath-be/pkg/llm/ollama"
)

type Config struct {
	Provider string // gemini, ollama, huggingface
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration

	// Zero leaves the backend default in place.
	Temperature float64
	MaxTokens   int
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model, cfg.Timeout), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// NewContentProvider wraps the configured backend with timeouts, tracing and observation.
func NewContentProvider(cfg Config, observe llm.ObserveFunc) (llm.ContentProvider, error) {
	backend, err := NewLLMProvider(cfg)
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(cfg.Provider)
	if name == "" {
		name = "gemini"
	}
	var options []llm.Option
	if cfg.Temperature > 0 {
		options = append(options, llm.WithTemperature(cfg.Temperature))
	}
	if cfg.MaxTokens > 0 {
		options = append(options, llm.WithMaxTokens(cfg.MaxTokens))
	}
	return llm.NewClient(name, backend, cfg.Timeout, observe, options...), nil
}
