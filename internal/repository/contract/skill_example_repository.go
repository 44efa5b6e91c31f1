package contract

import (
	"context"

	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredSkill wraps a skill example with its similarity score
type ScoredSkill struct {
	Example    *entity.SkillExample
	Similarity float64
}

type SkillExampleRepository interface {
	Create(ctx context.Context, example *entity.SkillExample) error
	Update(ctx context.Context, example *entity.SkillExample) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SkillExample, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SkillExample, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Advanced
	FindRecent(ctx context.Context, limit int, category string) ([]*entity.SkillExample, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*ScoredSkill, error)
}
