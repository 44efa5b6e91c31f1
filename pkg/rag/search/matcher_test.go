package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRow struct {
	name      string
	embedding []float32
}

func newMatcher(
	search func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[fakeRow], error),
	recent func(ctx context.Context, limit int) ([]fakeRow, error),
) *Matcher[fakeRow] {
	return &Matcher[fakeRow]{
		Name: "test",
		Config: CategoryConfig{
			Thresholds: []float64{0.3, 0.2, 0.1},
			Limit:      2,
			ScanLimit:  10,
		},
		Search:    search,
		Recent:    recent,
		Embedding: func(r fakeRow) []float32 { return r.embedding },
		Logger:    zap.NewNop(),
	}
}

func TestMatchFirstThresholdWins(t *testing.T) {
	var tried []float64
	matcher := newMatcher(
		func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[fakeRow], error) {
			tried = append(tried, threshold)
			return []Candidate[fakeRow]{{Item: fakeRow{name: "hit"}, Similarity: 0.42}}, nil
		},
		func(ctx context.Context, limit int) ([]fakeRow, error) {
			t.Fatal("manual scan must not run when a threshold matches")
			return nil, nil
		},
	)

	results, err := matcher.Match(context.Background(), []float32{1, 0})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hit", results[0].Item.name)
	assert.Equal(t, []float64{0.3}, tried)
}

func TestMatchCascadesToLooserThreshold(t *testing.T) {
	var tried []float64
	matcher := newMatcher(
		func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[fakeRow], error) {
			tried = append(tried, threshold)
			if threshold > 0.15 {
				return nil, nil
			}
			return []Candidate[fakeRow]{{Item: fakeRow{name: "loose"}, Similarity: 0.12}}, nil
		},
		nil,
	)

	results, err := matcher.Match(context.Background(), []float32{1, 0})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "loose", results[0].Item.name)
	assert.Equal(t, []float64{0.3, 0.2, 0.1}, tried)
}

func TestMatchThresholdErrorFallsThrough(t *testing.T) {
	matcher := newMatcher(
		func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[fakeRow], error) {
			if threshold == 0.3 {
				return nil, errors.New("index unavailable")
			}
			return []Candidate[fakeRow]{{Item: fakeRow{name: "after-error"}, Similarity: 0.25}}, nil
		},
		nil,
	)

	results, err := matcher.Match(context.Background(), []float32{1, 0})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "after-error", results[0].Item.name)
}

func TestMatchManualScan(t *testing.T) {
	matcher := newMatcher(
		func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[fakeRow], error) {
			return nil, nil
		},
		func(ctx context.Context, limit int) ([]fakeRow, error) {
			assert.Equal(t, 10, limit)
			return []fakeRow{
				{name: "orthogonal", embedding: []float32{0, 1}},
				{name: "unembedded", embedding: nil},
				{name: "aligned", embedding: []float32{1, 0}},
				{name: "diagonal", embedding: []float32{1, 1}},
			}, nil
		},
	)

	results, err := matcher.Match(context.Background(), []float32{1, 0})
	require.NoError(t, err)

	// Top 2 by client-side cosine; the unembedded row is excluded, not
	// scored as zero.
	require.Len(t, results, 2)
	assert.Equal(t, "aligned", results[0].Item.name)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
	assert.Equal(t, "diagonal", results[1].Item.name)
}

func TestMatchManualScanEmptyTable(t *testing.T) {
	matcher := newMatcher(
		func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[fakeRow], error) {
			return nil, nil
		},
		func(ctx context.Context, limit int) ([]fakeRow, error) {
			return nil, nil
		},
	)

	results, err := matcher.Match(context.Background(), []float32{1, 0})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchManualScanError(t *testing.T) {
	matcher := newMatcher(
		func(ctx context.Context, vector []float32, threshold float64, limit int) ([]Candidate[fakeRow], error) {
			return nil, nil
		},
		func(ctx context.Context, limit int) ([]fakeRow, error) {
			return nil, errors.New("connection refused")
		},
	)

	_, err := matcher.Match(context.Background(), []float32{1, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manual scan")
}
