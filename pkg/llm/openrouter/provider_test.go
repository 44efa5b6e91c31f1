package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coverletter-ai-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(serverURL string) *OpenRouterProvider {
	p := NewOpenRouterProvider("test-key", "")
	p.BaseURL = serverURL
	return p
}

func TestChatStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		assert.Equal(t, "openai/gpt-3.5-turbo", req.Model)
		assert.Equal(t, 1500, req.MaxTokens)
		assert.InDelta(t, 0.6, req.Temperature, 1e-9)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Dear\"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive comment\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\" Hiring Manager\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	var chunks []string
	err := provider.ChatStream(context.Background(), []llm.Message{
		{Role: "system", Content: "You write cover letters."},
		{Role: "user", Content: "Write one."},
	}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager", strings.Join(chunks, ""))
}

func TestChatStreamHandlerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"chunk\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"never delivered\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	wantErr := errors.New("client went away")
	calls := 0
	err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, func(chunk string) error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestChatStreamUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, func(string) error {
		t.Fatal("handler must not run on upstream error")
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "custom-model", req.Model)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "full letter"}},
			},
		})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	got, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, llm.WithModel("custom-model"))
	require.NoError(t, err)
	assert.Equal(t, "full letter", got)
}
