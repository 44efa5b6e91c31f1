package service

import (
	"context"
	"errors"
	"fmt"

	"coverletter-ai-be/internal/dto"
	"coverletter-ai-be/internal/repository/unitofwork"
	"coverletter-ai-be/pkg/llm"
	"coverletter-ai-be/pkg/rag/prompt"
	"coverletter-ai-be/pkg/rag/search"

	"go.uber.org/zap"
)

// ErrEmbeddingUnavailable marks a generation that failed before streaming
// because the job posting could not be embedded.
var ErrEmbeddingUnavailable = errors.New("failed to create embedding for job")

type IGenerationService interface {
	Prepare(ctx context.Context, req *dto.GenerateCoverLetterRequest) (*PreparedGeneration, error)
	Stream(ctx context.Context, prepared *PreparedGeneration, handler llm.StreamHandler) error
}

// PreparedGeneration holds everything needed to start streaming: the
// retrieval outcome plus the prompts built from it.
type PreparedGeneration struct {
	Retrieval    *search.RetrievalContext
	SystemPrompt string
	UserPrompt   string
}

type generationService struct {
	uowFactory   unitofwork.RepositoryFactory
	orchestrator *search.Orchestrator
	llmProvider  llm.LLMProvider
	logger       *zap.Logger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	orchestrator *search.Orchestrator,
	llmProvider llm.LLMProvider,
	logger *zap.Logger,
) IGenerationService {
	return &generationService{
		uowFactory:   uowFactory,
		orchestrator: orchestrator,
		llmProvider:  llmProvider,
		logger:       logger,
	}
}

func (s *generationService) Prepare(ctx context.Context, req *dto.GenerateCoverLetterRequest) (*PreparedGeneration, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	retrieval, err := s.orchestrator.Retrieve(ctx, uow, search.Request{
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Category:       req.Category,
	})
	if err != nil {
		// The orchestrator only hard-fails when the query embedding cannot
		// be produced; everything downstream degrades internally.
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}

	s.logger.Info("retrieval complete",
		zap.String("job_title", req.JobTitle),
		zap.String("primary_domain", retrieval.JobAnalysis.PrimaryDomain),
		zap.Int("total_matches", retrieval.TotalMatches),
		zap.Bool("has_knowledge_base", retrieval.HasKnowledgeBase),
		zap.Bool("fallback_used", retrieval.FallbackUsed))

	builder := prompt.NewBuilder(req.JobTitle, req.JobDescription, req.ClientName, retrieval)

	return &PreparedGeneration{
		Retrieval:    retrieval,
		SystemPrompt: builder.SystemPrompt(),
		UserPrompt:   builder.UserPrompt(),
	}, nil
}

func (s *generationService) Stream(ctx context.Context, prepared *PreparedGeneration, handler llm.StreamHandler) error {
	history := []llm.Message{
		{Role: "system", Content: prepared.SystemPrompt},
		{Role: "user", Content: prepared.UserPrompt},
	}
	return s.llmProvider.ChatStream(ctx, history, handler)
}
