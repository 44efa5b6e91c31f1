package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	cohereDefaultBaseURL = "https://api.cohere.ai"
	cohereModel          = "embed-english-v3.0" // 1024 dimensions
)

type CohereProvider struct {
	ApiKey  string
	BaseURL string
	client  *http.Client
}

func NewCohereProvider(apiKey string) EmbeddingProvider {
	return &CohereProvider{
		ApiKey:  apiKey,
		BaseURL: cohereDefaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type cohereEmbedRequest struct {
	Model     string   `json:"model"`
	Texts     []string `json:"texts"`
	InputType string   `json:"input_type"`
}

type cohereEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (p *CohereProvider) Generate(ctx context.Context, text string, inputType string) (*EmbeddingResponse, error) {
	if p.ApiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if inputType == "" {
		inputType = InputTypeQuery
	}

	reqBody := cohereEmbedRequest{
		Model:     cohereModel,
		Texts:     []string{text},
		InputType: inputType,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/embed", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cohere request failed: %w", err)
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from cohere response, code %d, body %s", res.StatusCode, string(resByte))
	}

	var embedRes cohereEmbedResponse
	if err := json.Unmarshal(resByte, &embedRes); err != nil {
		return nil, err
	}
	if len(embedRes.Embeddings) == 0 || len(embedRes.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("cohere returned no embedding for input")
	}

	return &EmbeddingResponse{
		Embedding: embedRes.Embeddings[0],
	}, nil
}
