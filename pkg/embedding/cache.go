package embedding

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedProvider memoizes embeddings per (inputType, text). Repeated retrieval
// for the same job posting skips the provider round trip entirely.
type CachedProvider struct {
	inner EmbeddingProvider
	cache *gocache.Cache
}

func NewCachedProvider(inner EmbeddingProvider, ttl time.Duration) EmbeddingProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedProvider{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (p *CachedProvider) Generate(ctx context.Context, text string, inputType string) (*EmbeddingResponse, error) {
	key := inputType + "\x00" + text
	if cached, found := p.cache.Get(key); found {
		return cached.(*EmbeddingResponse), nil
	}

	res, err := p.inner.Generate(ctx, text, inputType)
	if err != nil {
		return nil, err
	}

	p.cache.SetDefault(key, res)
	return res, nil
}
