package search

import (
	"context"
	"sort"
	"strings"

	"coverletter-ai-be/internal/repository/contract"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hydrator re-reads cover-letter rows by primary key just before use. The
// similarity index may serve stale projections, so the authoritative row is
// always re-fetched, the search score reattached, and records whose letter
// text is blank after hydration are dropped rather than handed to generation.
type Hydrator struct {
	logger *zap.Logger
}

func NewHydrator(logger *zap.Logger) *Hydrator {
	return &Hydrator{logger: logger}
}

func (h *Hydrator) Hydrate(ctx context.Context, repo contract.CoverLetterExampleRepository, candidates []*contract.ScoredCoverLetter) []*contract.ScoredCoverLetter {
	if len(candidates) == 0 {
		return candidates
	}

	ids := make([]uuid.UUID, len(candidates))
	similarityById := make(map[uuid.UUID]float64, len(candidates))
	orderById := make(map[uuid.UUID]int, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Example.Id
		similarityById[c.Example.Id] = c.Similarity
		orderById[c.Example.Id] = i
	}

	rows, err := repo.FindByIds(ctx, ids)
	if err != nil {
		// Search already returned full rows; fresh reads are preferred but
		// not worth failing retrieval over.
		h.logger.Warn("cover letter hydration failed, using search rows", zap.Error(err))
		return h.filterBlank(candidates)
	}

	hydrated := make([]*contract.ScoredCoverLetter, 0, len(rows))
	for _, row := range rows {
		similarity, ok := similarityById[row.Id]
		if !ok {
			continue
		}
		hydrated = append(hydrated, &contract.ScoredCoverLetter{
			Example:    row,
			Similarity: similarity,
		})
	}

	sort.SliceStable(hydrated, func(i, j int) bool {
		if hydrated[i].Similarity != hydrated[j].Similarity {
			return hydrated[i].Similarity > hydrated[j].Similarity
		}
		return orderById[hydrated[i].Example.Id] < orderById[hydrated[j].Example.Id]
	})

	return h.filterBlank(hydrated)
}

func (h *Hydrator) filterBlank(candidates []*contract.ScoredCoverLetter) []*contract.ScoredCoverLetter {
	kept := make([]*contract.ScoredCoverLetter, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c.Example.CoverLetter) == "" {
			continue
		}
		kept = append(kept, c)
	}

	if dropped := len(candidates) - len(kept); dropped > 0 {
		h.logger.Info("dropped blank cover letters after hydration", zap.Int("dropped", dropped))
	}
	return kept
}
