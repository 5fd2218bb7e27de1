package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"learnpath-be/pkg/llm"
)

// FakeProvider is a scripted llm.ContentProvider. Unset funcs return
// ErrNotScripted.
type FakeProvider struct {
	TextFn       func(prompt string) (string, error)
	StructuredFn func(prompt string) (json.RawMessage, error)
	ChatFn       func(history []llm.Message) (string, error)

	mu      sync.Mutex
	prompts []string
	chats   [][]llm.Message
}

var _ llm.ContentProvider = (*FakeProvider)(nil)

var ErrNotScripted = errors.New("fake provider: call not scripted")

func (f *FakeProvider) GenerateText(_ context.Context, prompt string) (string, error) {
	f.record(prompt)
	if f.TextFn == nil {
		return "", ErrNotScripted
	}
	return f.TextFn(prompt)
}

func (f *FakeProvider) GenerateStructured(_ context.Context, prompt string) (json.RawMessage, error) {
	f.record(prompt)
	if f.StructuredFn == nil {
		return nil, ErrNotScripted
	}
	return f.StructuredFn(prompt)
}

func (f *FakeProvider) Chat(_ context.Context, history []llm.Message) (string, error) {
	f.mu.Lock()
	f.chats = append(f.chats, append([]llm.Message(nil), history...))
	f.mu.Unlock()
	if f.ChatFn == nil {
		return "", ErrNotScripted
	}
	return f.ChatFn(history)
}

// Prompts returns the prompts passed to GenerateText and GenerateStructured.
func (f *FakeProvider) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// Chats returns every history passed to Chat.
func (f *FakeProvider) Chats() [][]llm.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]llm.Message(nil), f.chats...)
}

func (f *FakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts) + len(f.chats)
}

func (f *FakeProvider) record(prompt string) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
}

// Structured returns a StructuredFn that always yields doc.
func Structured(doc string) func(string) (json.RawMessage, error) {
	return func(string) (json.RawMessage, error) {
		return json.RawMessage(doc), nil
	}
}
