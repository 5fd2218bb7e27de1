package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ObserveFunc is told about every finished backend call.
type ObserveFunc func(backend, operation string, duration time.Duration, err error)

// Client turns a chat backend into a ContentProvider. Each call is bounded by
// timeout and traced, and carries the client's default options.
type Client struct {
	name    string
	backend LLMProvider
	timeout time.Duration
	observe ObserveFunc
	options []Option
}

var _ ContentProvider = (*Client)(nil)

func NewClient(name string, backend LLMProvider, timeout time.Duration, observe ObserveFunc, options ...Option) *Client {
	return &Client{
		name:    name,
		backend: backend,
		timeout: timeout,
		observe: observe,
		options: options,
	}
}

func (c *Client) with(extra ...Option) []Option {
	out := make([]Option, 0, len(c.options)+len(extra))
	out = append(out, c.options...)
	return append(out, extra...)
}

func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	var text string
	err := c.call(ctx, "generate_text", func(ctx context.Context) error {
		out, err := c.backend.Generate(ctx, prompt, c.options...)
		if err != nil {
			return err
		}
		if strings.TrimSpace(out) == "" {
			return ErrEmptyResponse
		}
		text = out
		return nil
	})
	return text, err
}

func (c *Client) GenerateStructured(ctx context.Context, prompt string) (json.RawMessage, error) {
	var doc json.RawMessage
	err := c.call(ctx, "generate_structured", func(ctx context.Context) error {
		out, err := c.backend.Generate(ctx, prompt, c.with(WithJSONResponse())...)
		if err != nil {
			return err
		}
		doc, err = DecodeStructured(out)
		return err
	})
	return doc, err
}

func (c *Client) Chat(ctx context.Context, history []Message) (string, error) {
	var reply string
	err := c.call(ctx, "chat", func(ctx context.Context) error {
		out, err := c.backend.Chat(ctx, history, c.options...)
		if err != nil {
			return err
		}
		if strings.TrimSpace(out) == "" {
			return ErrEmptyResponse
		}
		reply = out
		return nil
	})
	return reply, err
}

func (c *Client) call(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := otel.Tracer("learnpath-be/llm").Start(ctx, "llm."+operation)
	span.SetAttributes(attribute.String("llm.backend", c.name))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	if c.observe != nil {
		c.observe(c.name, operation, time.Since(start), err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s %s: %w", c.name, operation, err)
	}
	return nil
}
