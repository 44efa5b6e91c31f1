package search

import (
	"context"
	"fmt"
	"sort"

	"coverletter-ai-be/pkg/vectormath"

	"go.uber.org/zap"
)

// Candidate pairs a retrieved item with its similarity score
type Candidate[T any] struct {
	Item       T
	Similarity float64
}

// Matcher runs the cascading-threshold search for one knowledge category.
// Thresholds are tried strictest first and the first non-empty result set is
// accepted. When every threshold misses, a manual scan fetches the most
// recent rows and computes cosine similarity client-side; rows without a
// stored embedding are excluded from the scan rather than scored as zero.
type Matcher[T any] struct {
	Name   string
	Config CategoryConfig

	// Search issues an indexed similarity query at the given threshold.
	Search func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[T], error)
	// Recent fetches up to limit most-recent rows for the manual scan.
	Recent func(ctx context.Context, limit int) ([]T, error)
	// Embedding extracts the stored vector; empty means unembedded.
	Embedding func(item T) []float32

	Logger *zap.Logger
}

// Match returns ranked candidates for the query vector. A failing threshold
// query is logged and skipped so one bad plan does not sink the cascade; an
// error is returned only when the manual scan itself cannot read the table.
func (m *Matcher[T]) Match(ctx context.Context, vector []float32) ([]Candidate[T], error) {
	for _, threshold := range m.Config.Thresholds {
		results, err := m.Search(ctx, vector, threshold, m.Config.Limit)
		if err != nil {
			m.Logger.Warn("threshold query failed, trying next",
				zap.String("category", m.Name),
				zap.Float64("threshold", threshold),
				zap.Error(err))
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	return m.manualScan(ctx, vector)
}

func (m *Matcher[T]) manualScan(ctx context.Context, vector []float32) ([]Candidate[T], error) {
	rows, err := m.Recent(ctx, m.Config.ScanLimit)
	if err != nil {
		return nil, fmt.Errorf("%s manual scan: %w", m.Name, err)
	}

	var candidates []Candidate[T]
	for _, row := range rows {
		stored := m.Embedding(row)
		if len(stored) == 0 {
			continue
		}
		candidates = append(candidates, Candidate[T]{
			Item:       row,
			Similarity: vectormath.CosineSimilarity(vector, stored),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	if len(candidates) > m.Config.Limit {
		candidates = candidates[:m.Config.Limit]
	}

	m.Logger.Debug("manual scan served category",
		zap.String("category", m.Name),
		zap.Int("scanned", len(rows)),
		zap.Int("returned", len(candidates)))

	return candidates, nil
}
