package fallback

import (
	"context"

	"coverletter-ai-be/internal/repository/contract"
	"coverletter-ai-be/internal/repository/unitofwork"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SentinelSimilarity tags recency-based records so downstream formatting can
// always print a similarity figure, while staying low enough to read as "not
// a real semantic match".
const SentinelSimilarity = 0.05

const (
	coverLetterCap = 2
	projectCap     = 2
	skillCap       = 4
)

// Result carries the recency-ordered substitute lists for all three
// categories.
type Result struct {
	R1 []*contract.ScoredCoverLetter
	R2 []*contract.ScoredProject
	R3 []*contract.ScoredSkill
}

// Provider serves most-recent examples when similarity search finds nothing
// at all. No similarity is computed; every record carries the sentinel score.
type Provider struct {
	logger *zap.Logger
}

func NewProvider(logger *zap.Logger) *Provider {
	return &Provider{logger: logger}
}

// Fallback reads the three recency lists concurrently. A failing read leaves
// its list empty; fallback is best effort by definition.
func (p *Provider) Fallback(ctx context.Context, uow unitofwork.UnitOfWork, category string) *Result {
	result := &Result{
		R1: []*contract.ScoredCoverLetter{},
		R2: []*contract.ScoredProject{},
		R3: []*contract.ScoredSkill{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := uow.CoverLetterExampleRepository().FindRecent(gctx, coverLetterCap, category)
		if err != nil {
			p.logger.Warn("fallback cover letter read failed", zap.Error(err))
			return nil
		}
		for _, row := range rows {
			result.R1 = append(result.R1, &contract.ScoredCoverLetter{Example: row, Similarity: SentinelSimilarity})
		}
		return nil
	})

	g.Go(func() error {
		rows, err := uow.ProjectExampleRepository().FindRecent(gctx, projectCap, category)
		if err != nil {
			p.logger.Warn("fallback project read failed", zap.Error(err))
			return nil
		}
		for _, row := range rows {
			result.R2 = append(result.R2, &contract.ScoredProject{Example: row, Similarity: SentinelSimilarity})
		}
		return nil
	})

	g.Go(func() error {
		rows, err := uow.SkillExampleRepository().FindRecent(gctx, skillCap, category)
		if err != nil {
			p.logger.Warn("fallback skill read failed", zap.Error(err))
			return nil
		}
		for _, row := range rows {
			result.R3 = append(result.R3, &contract.ScoredSkill{Example: row, Similarity: SentinelSimilarity})
		}
		return nil
	})

	// Workers only ever return nil; the group is used for the fan-out and
	// context plumbing.
	_ = g.Wait()

	return result
}
