package search

import (
	"context"
	"fmt"

	"coverletter-ai-be/internal/repository/contract"
	"coverletter-ai-be/internal/repository/unitofwork"
	"coverletter-ai-be/pkg/embedding"
	"coverletter-ai-be/pkg/rag/analysis"
	"coverletter-ai-be/pkg/rag/fallback"
	"coverletter-ai-be/pkg/rag/rerank"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request identifies one retrieval call. Category is optional and scopes
// every search when set.
type Request struct {
	JobTitle       string
	JobDescription string
	Category       string
}

// RetrievalContext is the assembled output of one retrieval call, consumed by
// the prompt builder.
type RetrievalContext struct {
	R1 []*contract.ScoredCoverLetter
	R2 []*rerank.ProjectCandidate
	R3 []*contract.ScoredSkill

	// HasKnowledgeBase reflects real matches only; fallback substitution
	// never sets it.
	HasKnowledgeBase bool
	TotalMatches     int
	FallbackUsed     bool
	JobAnalysis      analysis.JobAnalysis
}

// Orchestrator runs the full retrieval sequence: embed the job text once, fan
// out the three category searches, rerank projects, hydrate cover letters,
// and substitute recency fallback when nothing matched anywhere.
type Orchestrator struct {
	embeddingProvider embedding.EmbeddingProvider
	analyzer          *analysis.Analyzer
	reranker          *rerank.Reranker
	hydrator          *Hydrator
	fallbackProvider  *fallback.Provider
	config            Config
	logger            *zap.Logger
}

// NewOrchestrator creates a new retrieval orchestrator
func NewOrchestrator(embeddingProvider embedding.EmbeddingProvider, config Config, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		analyzer:          analysis.NewAnalyzer(),
		reranker:          rerank.NewReranker(),
		hydrator:          NewHydrator(logger),
		fallbackProvider:  fallback.NewProvider(logger),
		config:            config,
		logger:            logger,
	}
}

// Retrieve assembles the retrieval context for one job posting. The query
// embedding is a hard prerequisite: if it fails, the whole retrieval fails.
// A single category search failing degrades that category to empty instead.
func (o *Orchestrator) Retrieve(ctx context.Context, uow unitofwork.UnitOfWork, req Request) (*RetrievalContext, error) {
	jobAnalysis := o.analyzer.Analyze(req.JobTitle, req.JobDescription)

	embeddingRes, err := o.embeddingProvider.Generate(ctx, req.JobTitle+" "+req.JobDescription, embedding.InputTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}
	queryVector := embeddingRes.Embedding

	var (
		coverLetters []*contract.ScoredCoverLetter
		projects     []*contract.ScoredProject
		skills       []*contract.ScoredSkill
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		coverLetters = o.searchCoverLetters(gctx, uow, queryVector, req.Category)
		return nil
	})
	g.Go(func() error {
		projects = o.searchProjects(gctx, uow, queryVector, req.Category)
		return nil
	})
	g.Go(func() error {
		skills = o.searchSkills(gctx, uow, queryVector, req.Category)
		return nil
	})
	_ = g.Wait()

	rerankedProjects := o.reranker.Rerank(projects, jobAnalysis)
	hydratedLetters := o.hydrator.Hydrate(ctx, uow.CoverLetterExampleRepository(), coverLetters)

	totalMatches := len(hydratedLetters) + len(rerankedProjects) + len(skills)
	hasKnowledgeBase := totalMatches > 0

	result := &RetrievalContext{
		R1:               hydratedLetters,
		R2:               rerankedProjects,
		R3:               skills,
		HasKnowledgeBase: hasKnowledgeBase,
		TotalMatches:     totalMatches,
		JobAnalysis:      jobAnalysis,
	}

	if totalMatches == 0 {
		o.logger.Info("no matches in any category, using recency fallback",
			zap.String("jobTitle", req.JobTitle))
		fb := o.fallbackProvider.Fallback(ctx, uow, req.Category)
		result.R1 = fb.R1
		result.R2 = wrapFallbackProjects(fb.R2)
		result.R3 = fb.R3
		result.FallbackUsed = true
	}

	return result, nil
}

func (o *Orchestrator) searchCoverLetters(ctx context.Context, uow unitofwork.UnitOfWork, vector []float32, category string) []*contract.ScoredCoverLetter {
	repo := uow.CoverLetterExampleRepository()
	matcher := &Matcher[*contract.ScoredCoverLetter]{
		Name:   "cover_letters",
		Config: o.config.CoverLetters,
		Search: func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[*contract.ScoredCoverLetter], error) {
			rows, err := repo.SearchSimilarWithScore(ctx, vector, limit, threshold, category)
			if err != nil {
				return nil, err
			}
			candidates := make([]Candidate[*contract.ScoredCoverLetter], len(rows))
			for i, row := range rows {
				candidates[i] = Candidate[*contract.ScoredCoverLetter]{Item: row, Similarity: row.Similarity}
			}
			return candidates, nil
		},
		Recent: func(ctx context.Context, limit int) ([]*contract.ScoredCoverLetter, error) {
			rows, err := repo.FindRecent(ctx, limit, category)
			if err != nil {
				return nil, err
			}
			wrapped := make([]*contract.ScoredCoverLetter, len(rows))
			for i, row := range rows {
				wrapped[i] = &contract.ScoredCoverLetter{Example: row}
			}
			return wrapped, nil
		},
		Embedding: func(item *contract.ScoredCoverLetter) []float32 {
			return item.Example.CombinedEmbedding
		},
		Logger: o.logger,
	}

	candidates, err := matcher.Match(ctx, vector)
	if err != nil {
		o.logger.Warn("cover letter search degraded to empty", zap.Error(err))
		return nil
	}

	results := make([]*contract.ScoredCoverLetter, len(candidates))
	for i, c := range candidates {
		c.Item.Similarity = c.Similarity
		results[i] = c.Item
	}
	return results
}

func (o *Orchestrator) searchProjects(ctx context.Context, uow unitofwork.UnitOfWork, vector []float32, category string) []*contract.ScoredProject {
	repo := uow.ProjectExampleRepository()
	matcher := &Matcher[*contract.ScoredProject]{
		Name:   "projects",
		Config: o.config.Projects,
		Search: func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[*contract.ScoredProject], error) {
			rows, err := repo.SearchSimilarWithScore(ctx, vector, limit, threshold, category)
			if err != nil {
				return nil, err
			}
			candidates := make([]Candidate[*contract.ScoredProject], len(rows))
			for i, row := range rows {
				candidates[i] = Candidate[*contract.ScoredProject]{Item: row, Similarity: row.Similarity}
			}
			return candidates, nil
		},
		Recent: func(ctx context.Context, limit int) ([]*contract.ScoredProject, error) {
			rows, err := repo.FindRecent(ctx, limit, category)
			if err != nil {
				return nil, err
			}
			wrapped := make([]*contract.ScoredProject, len(rows))
			for i, row := range rows {
				wrapped[i] = &contract.ScoredProject{Example: row}
			}
			return wrapped, nil
		},
		Embedding: func(item *contract.ScoredProject) []float32 {
			return item.Example.CombinedEmbedding
		},
		Logger: o.logger,
	}

	candidates, err := matcher.Match(ctx, vector)
	if err != nil {
		o.logger.Warn("project search degraded to empty", zap.Error(err))
		return nil
	}

	results := make([]*contract.ScoredProject, len(candidates))
	for i, c := range candidates {
		c.Item.Similarity = c.Similarity
		results[i] = c.Item
	}
	return results
}

func (o *Orchestrator) searchSkills(ctx context.Context, uow unitofwork.UnitOfWork, vector []float32, category string) []*contract.ScoredSkill {
	repo := uow.SkillExampleRepository()
	matcher := &Matcher[*contract.ScoredSkill]{
		Name:   "skills",
		Config: o.config.Skills,
		Search: func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[*contract.ScoredSkill], error) {
			rows, err := repo.SearchSimilarWithScore(ctx, vector, limit, threshold, category)
			if err != nil {
				return nil, err
			}
			candidates := make([]Candidate[*contract.ScoredSkill], len(rows))
			for i, row := range rows {
				candidates[i] = Candidate[*contract.ScoredSkill]{Item: row, Similarity: row.Similarity}
			}
			return candidates, nil
		},
		Recent: func(ctx context.Context, limit int) ([]*contract.ScoredSkill, error) {
			rows, err := repo.FindRecent(ctx, limit, category)
			if err != nil {
				return nil, err
			}
			wrapped := make([]*contract.ScoredSkill, len(rows))
			for i, row := range rows {
				wrapped[i] = &contract.ScoredSkill{Example: row}
			}
			return wrapped, nil
		},
		Embedding: func(item *contract.ScoredSkill) []float32 {
			return item.Example.CombinedEmbedding
		},
		Logger: o.logger,
	}

	candidates, err := matcher.Match(ctx, vector)
	if err != nil {
		o.logger.Warn("skill search degraded to empty", zap.Error(err))
		return nil
	}

	results := make([]*contract.ScoredSkill, len(candidates))
	for i, c := range candidates {
		c.Item.Similarity = c.Similarity
		results[i] = c.Item
	}
	return results
}

func wrapFallbackProjects(projects []*contract.ScoredProject) []*rerank.ProjectCandidate {
	wrapped := make([]*rerank.ProjectCandidate, len(projects))
	for i, p := range projects {
		wrapped[i] = &rerank.ProjectCandidate{Example: p}
	}
	return wrapped
}
