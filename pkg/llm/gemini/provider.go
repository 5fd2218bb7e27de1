package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"learnpath-be/pkg/llm"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const (
	roleUser  = "user"
	roleModel = "model"
)

type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, baseURL, model string, timeout time.Duration) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string        `json:"role,omitempty"`
	Parts []*geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []*geminiContent        `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      *geminiContent `json:"content"`
	FinishReason string         `json:"finishReason"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{}, opts...)

	payload := geminiRequest{Contents: make([]*geminiContent, 0, len(history))}
	var system []string
	for _, msg := range history {
		switch msg.Role {
		case "system":
			system = append(system, msg.Content)
		case "assistant", roleModel:
			payload.Contents = append(payload.Contents, textContent(roleModel, msg.Content))
		default:
			payload.Contents = append(payload.Contents, textContent(roleUser, msg.Content))
		}
	}
	if len(system) > 0 {
		payload.SystemInstruction = textContent("", strings.Join(system, "\n\n"))
	}

	config := &geminiGenerationConfig{MaxOutputTokens: options.MaxTokens}
	if options.JSON {
		config.ResponseMimeType = "application/json"
	}
	if options.Temperature > 0 {
		temp := options.Temperature
		config.Temperature = &temp
	}
	payload.GenerationConfig = config

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", llm.NewStatusError("gemini", res.StatusCode, resBody)
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return firstText(&geminiRes)
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: roleUser, Content: prompt}}, opts...)
}

func textContent(role, text string) *geminiContent {
	return &geminiContent{Role: role, Parts: []*geminiPart{{Text: text}}}
}

func firstText(res *geminiResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", llm.ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", llm.ErrEmptyResponse
	}
	return sb.String(), nil
}
