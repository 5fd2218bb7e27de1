package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnpath-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	path   string
	apiKey string
}

func newTestServer(t *testing.T, handler func(req geminiRequest) (int, any)) (*httptest.Server, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.path = r.URL.Path
		seen.apiKey = r.Header.Get("x-goog-api-key")
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server, seen
}

func TestGeminiProvider_ChatMapsRoles(t *testing.T) {
	var captured geminiRequest
	server, seen := newTestServer(t, func(req geminiRequest) (int, any) {
		captured = req
		return http.StatusOK, geminiResponse{Candidates: []*geminiCandidate{{
			Content: textContent(roleModel, "Channels connect goroutines."),
		}}}
	})

	p := NewGeminiProvider("secret", server.URL, "gemini-test", time.Second)
	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "You are a tutor."},
		{Role: "user", Content: "What is a channel?"},
		{Role: "assistant", Content: "A pipe."},
		{Role: "user", Content: "More please"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Channels connect goroutines.", reply)
	assert.Equal(t, "/models/gemini-test:generateContent", seen.path)
	assert.Equal(t, "secret", seen.apiKey)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "You are a tutor.", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, roleUser, captured.Contents[0].Role)
	assert.Equal(t, roleModel, captured.Contents[1].Role)
	assert.Empty(t, captured.GenerationConfig.ResponseMimeType)
}

func TestGeminiProvider_JSONMode(t *testing.T) {
	var captured geminiRequest
	server, _ := newTestServer(t, func(req geminiRequest) (int, any) {
		captured = req
		return http.StatusOK, geminiResponse{Candidates: []*geminiCandidate{{
			Content: textContent(roleModel, `[{"topic":"Go","duration":3}]`),
		}}}
	})

	p := NewGeminiProvider("k", server.URL, "", time.Second)
	out, err := p.Generate(context.Background(), "schedule", llm.WithJSONResponse())
	require.NoError(t, err)

	assert.Equal(t, `[{"topic":"Go","duration":3}]`, out)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
}

func TestGeminiProvider_Failures(t *testing.T) {
	t.Run("non 2xx", func(t *testing.T) {
		server, _ := newTestServer(t, func(geminiRequest) (int, any) {
			return http.StatusTooManyRequests, map[string]string{"error": "quota"}
		})
		_, err := NewGeminiProvider("k", server.URL, "m", time.Second).Generate(context.Background(), "x")
		assert.True(t, llm.IsStatus(err, http.StatusTooManyRequests))
	})

	t.Run("no candidates", func(t *testing.T) {
		server, _ := newTestServer(t, func(geminiRequest) (int, any) {
			return http.StatusOK, geminiResponse{}
		})
		_, err := NewGeminiProvider("k", server.URL, "m", time.Second).Generate(context.Background(), "x")
		assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	})
}
