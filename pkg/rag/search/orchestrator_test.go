package search

import (
	"context"
	"errors"
	"testing"

	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/repository/contract"
	"coverletter-ai-be/pkg/embedding"
	"coverletter-ai-be/pkg/rag/fallback"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func coverLetterExample(text string) *entity.CoverLetterExample {
	return &entity.CoverLetterExample{
		Id:          uuid.New(),
		JobTitle:    "Backend Engineer",
		CoverLetter: text,
	}
}

func testRequest() Request {
	return Request{
		JobTitle:       "Backend Engineer",
		JobDescription: "Build Go services on aws",
	}
}

func newTestOrchestrator(provider embedding.EmbeddingProvider) *Orchestrator {
	return NewOrchestrator(provider, DefaultConfig(), zap.NewNop())
}

func TestRetrieveEmbeddingFailureAborts(t *testing.T) {
	orchestrator := newTestOrchestrator(&fakeEmbeddingProvider{err: embedding.ErrMissingAPIKey})
	uow := newFakeUnitOfWork()

	uow.coverLetters.searchFn = func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredCoverLetter, error) {
		t.Fatal("no search may run without a query vector")
		return nil, nil
	}

	_, err := orchestrator.Retrieve(context.Background(), uow, testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, embedding.ErrMissingAPIKey)
}

func TestRetrieveAssemblesAllCategories(t *testing.T) {
	orchestrator := newTestOrchestrator(&fakeEmbeddingProvider{vector: []float32{1, 0}})
	uow := newFakeUnitOfWork()

	letter := coverLetterExample("Dear team, I build backends.")
	uow.coverLetters.searchFn = func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredCoverLetter, error) {
		return []*contract.ScoredCoverLetter{{Example: letter, Similarity: 0.8}}, nil
	}
	uow.coverLetters.findByIdsFn = func(ctx context.Context, ids []uuid.UUID) ([]*entity.CoverLetterExample, error) {
		return []*entity.CoverLetterExample{letter}, nil
	}
	uow.projects.searchFn = func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredProject, error) {
		return []*contract.ScoredProject{
			{Example: &entity.ProjectExample{Id: uuid.New(), ProjectTitle: "api", ProjectDescription: "go service on aws"}, Similarity: 0.7},
		}, nil
	}
	uow.skills.searchFn = func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredSkill, error) {
		return []*contract.ScoredSkill{
			{Example: &entity.SkillExample{Id: uuid.New(), SkillName: "Go"}, Similarity: 0.6},
		}, nil
	}

	result, err := orchestrator.Retrieve(context.Background(), uow, testRequest())
	require.NoError(t, err)

	assert.Len(t, result.R1, 1)
	assert.Len(t, result.R2, 1)
	assert.Len(t, result.R3, 1)
	assert.Equal(t, 3, result.TotalMatches)
	assert.True(t, result.HasKnowledgeBase)
	assert.False(t, result.FallbackUsed)
	assert.NotEmpty(t, result.JobAnalysis.Domains)
}

func TestRetrieveCategoryErrorDegradesToEmpty(t *testing.T) {
	orchestrator := newTestOrchestrator(&fakeEmbeddingProvider{vector: []float32{1, 0}})
	uow := newFakeUnitOfWork()

	// Every project read fails: thresholds and the manual scan.
	uow.projects.searchFn = func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredProject, error) {
		return nil, errors.New("projects table down")
	}
	uow.projects.recentFn = func(ctx context.Context, limit int, category string) ([]*entity.ProjectExample, error) {
		return nil, errors.New("projects table down")
	}

	skill := &entity.SkillExample{Id: uuid.New(), SkillName: "Go"}
	uow.skills.searchFn = func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredSkill, error) {
		return []*contract.ScoredSkill{{Example: skill, Similarity: 0.5}}, nil
	}

	result, err := orchestrator.Retrieve(context.Background(), uow, testRequest())
	require.NoError(t, err)

	assert.Empty(t, result.R2)
	assert.Len(t, result.R3, 1)
	assert.Equal(t, 1, result.TotalMatches)
	assert.True(t, result.HasKnowledgeBase)
	assert.False(t, result.FallbackUsed, "partial results must not trigger fallback")
}

func TestRetrieveGlobalFallback(t *testing.T) {
	orchestrator := newTestOrchestrator(&fakeEmbeddingProvider{vector: []float32{1, 0}})
	uow := newFakeUnitOfWork()

	// All three searches and manual scans come back empty; recency reads
	// serve the fallback lists.
	uow.coverLetters.recentFn = func(ctx context.Context, limit int, category string) ([]*entity.CoverLetterExample, error) {
		if limit == DefaultConfig().CoverLetters.ScanLimit {
			return nil, nil // manual scan
		}
		return []*entity.CoverLetterExample{coverLetterExample("recent letter")}, nil
	}
	uow.projects.recentFn = func(ctx context.Context, limit int, category string) ([]*entity.ProjectExample, error) {
		if limit == DefaultConfig().Projects.ScanLimit {
			return nil, nil
		}
		return []*entity.ProjectExample{{Id: uuid.New(), ProjectTitle: "recent project"}}, nil
	}
	uow.skills.recentFn = func(ctx context.Context, limit int, category string) ([]*entity.SkillExample, error) {
		if limit == DefaultConfig().Skills.ScanLimit {
			return nil, nil
		}
		return []*entity.SkillExample{{Id: uuid.New(), SkillName: "recent skill"}}, nil
	}

	result, err := orchestrator.Retrieve(context.Background(), uow, testRequest())
	require.NoError(t, err)

	assert.True(t, result.FallbackUsed)
	assert.False(t, result.HasKnowledgeBase, "fallback must not count as knowledge")
	assert.Equal(t, 0, result.TotalMatches)
	require.Len(t, result.R1, 1)
	require.Len(t, result.R2, 1)
	require.Len(t, result.R3, 1)
	assert.InDelta(t, fallback.SentinelSimilarity, result.R1[0].Similarity, 1e-9)
	assert.InDelta(t, fallback.SentinelSimilarity, result.R2[0].Example.Similarity, 1e-9)
	assert.InDelta(t, fallback.SentinelSimilarity, result.R3[0].Similarity, 1e-9)
}

func TestRetrieveBlankLettersDropToFallback(t *testing.T) {
	orchestrator := newTestOrchestrator(&fakeEmbeddingProvider{vector: []float32{1, 0}})
	uow := newFakeUnitOfWork()

	blank := coverLetterExample("   \n\t ")
	uow.coverLetters.searchFn = func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredCoverLetter, error) {
		return []*contract.ScoredCoverLetter{{Example: blank, Similarity: 0.9}}, nil
	}
	uow.coverLetters.findByIdsFn = func(ctx context.Context, ids []uuid.UUID) ([]*entity.CoverLetterExample, error) {
		return []*entity.CoverLetterExample{blank}, nil
	}

	result, err := orchestrator.Retrieve(context.Background(), uow, testRequest())
	require.NoError(t, err)

	// The only match was dropped as blank, so the global total is zero and
	// fallback kicks in.
	assert.Empty(t, result.R1)
	assert.True(t, result.FallbackUsed)
	assert.False(t, result.HasKnowledgeBase)
}
