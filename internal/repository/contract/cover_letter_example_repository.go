package contract

import (
	"context"

	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredCoverLetter wraps a cover-letter example with its similarity score
type ScoredCoverLetter struct {
	Example    *entity.CoverLetterExample
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type CoverLetterExampleRepository interface {
	Create(ctx context.Context, example *entity.CoverLetterExample) error
	Update(ctx context.Context, example *entity.CoverLetterExample) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CoverLetterExample, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CoverLetterExample, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Advanced
	FindRecent(ctx context.Context, limit int, category string) ([]*entity.CoverLetterExample, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.CoverLetterExample, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*ScoredCoverLetter, error)
}
