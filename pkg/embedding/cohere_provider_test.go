package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCohereProviderGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embed", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req cohereEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "embed-english-v3.0", req.Model)
		assert.Equal(t, InputTypeQuery, req.InputType)
		assert.Equal(t, []string{"golang backend engineer"}, req.Texts)

		json.NewEncoder(w).Encode(cohereEmbedResponse{
			Embeddings: [][]float32{{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	provider := &CohereProvider{
		ApiKey:  "test-key",
		BaseURL: server.URL,
		client:  server.Client(),
	}

	res, err := provider.Generate(context.Background(), "golang backend engineer", InputTypeQuery)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, res.Embedding)
}

func TestCohereProviderMissingKey(t *testing.T) {
	provider := NewCohereProvider("")

	_, err := provider.Generate(context.Background(), "anything", InputTypeQuery)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestCohereProviderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer server.Close()

	provider := &CohereProvider{
		ApiKey:  "test-key",
		BaseURL: server.URL,
		client:  server.Client(),
	}

	_, err := provider.Generate(context.Background(), "anything", InputTypeQuery)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "429")
}

func TestCohereProviderEmptyEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(cohereEmbedResponse{Embeddings: [][]float32{}})
	}))
	defer server.Close()

	provider := &CohereProvider{
		ApiKey:  "test-key",
		BaseURL: server.URL,
		client:  server.Client(),
	}

	_, err := provider.Generate(context.Background(), "anything", InputTypeDocument)
	assert.Error(t, err)
}

type countingProvider struct {
	calls int32
	res   *EmbeddingResponse
}

func (p *countingProvider) Generate(ctx context.Context, text string, inputType string) (*EmbeddingResponse, error) {
	atomic.AddInt32(&p.calls, 1)
	return p.res, nil
}

func TestCachedProvider(t *testing.T) {
	inner := &countingProvider{res: &EmbeddingResponse{Embedding: []float32{1, 2}}}
	cached := NewCachedProvider(inner, time.Minute)

	for i := 0; i < 3; i++ {
		res, err := cached.Generate(context.Background(), "same text", InputTypeQuery)
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2}, res.Embedding)
	}
	assert.EqualValues(t, 1, inner.calls)

	// A different input type is a different cache entry.
	_, err := cached.Generate(context.Background(), "same text", InputTypeDocument)
	require.NoError(t, err)
	assert.EqualValues(t, 2, inner.calls)
}
