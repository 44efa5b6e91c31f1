package embedding

import (
	"context"
	"errors"
)

// Input types distinguish retrieval queries from stored documents. Cohere
// tunes the embedding per side, so mixing them degrades similarity scores.
const (
	InputTypeQuery    = "search_query"
	InputTypeDocument = "search_document"
)

// ErrMissingAPIKey is returned before any network call when the provider has
// no credential configured. Callers treat it as a configuration error, not a
// transient provider failure.
var ErrMissingAPIKey = errors.New("embedding: missing api key")

type EmbeddingResponse struct {
	Embedding []float32
}

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, inputType string) (*EmbeddingResponse, error)
}
