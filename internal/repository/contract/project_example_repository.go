package contract

import (
	"context"

	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredProject wraps a project example with its similarity score
type ScoredProject struct {
	Example    *entity.ProjectExample
	Similarity float64
}

type ProjectExampleRepository interface {
	Create(ctx context.Context, example *entity.ProjectExample) error
	Update(ctx context.Context, example *entity.ProjectExample) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProjectExample, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProjectExample, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Advanced
	FindRecent(ctx context.Context, limit int, category string) ([]*entity.ProjectExample, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*ScoredProject, error)
}
