package implementation

import (
	"context"
	"errors"

	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/mapper"
	"coverletter-ai-be/internal/model"
	"coverletter-ai-be/internal/repository/contract"
	"coverletter-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SkillExampleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SkillExampleMapper
}

func NewSkillExampleRepository(db *gorm.DB) contract.SkillExampleRepository {
	return &SkillExampleRepositoryImpl{
		db:     db,
		mapper: mapper.NewSkillExampleMapper(),
	}
}

func (r *SkillExampleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SkillExampleRepositoryImpl) Create(ctx context.Context, example *entity.SkillExample) error {
	m := r.mapper.ToModel(example)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*example = *r.mapper.ToEntity(m)
	return nil
}

func (r *SkillExampleRepositoryImpl) Update(ctx context.Context, example *entity.SkillExample) error {
	m := r.mapper.ToModel(example)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*example = *r.mapper.ToEntity(m)
	return nil
}

func (r *SkillExampleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SkillExample{}, id).Error
}

func (r *SkillExampleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SkillExample, error) {
	var m model.SkillExample
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SkillExampleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SkillExample, error) {
	var models []*model.SkillExample
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SkillExampleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SkillExample{}).Count(&count).Error
	return count, err
}

func (r *SkillExampleRepositoryImpl) FindRecent(ctx context.Context, limit int, category string) ([]*entity.SkillExample, error) {
	return r.FindAll(ctx,
		specification.ByCategory{Category: category},
		specification.MostRecent{Limit: limit},
	)
}

func (r *SkillExampleRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredSkill, error) {
	if limit <= 0 {
		limit = 8
	}

	type result struct {
		model.SkillExample
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("skill_examples").
		Select("skill_examples.*, 1 - (combined_embedding <=> ?) as similarity", queryVector).
		Where("combined_embedding IS NOT NULL").
		Where("deleted_at IS NULL").
		Where("1 - (combined_embedding <=> ?) >= ?", queryVector, threshold)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredSkill, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredSkill{
			Example:    r.mapper.ToEntity(&res.SkillExample),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
