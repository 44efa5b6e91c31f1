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

type ProjectExampleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProjectExampleMapper
}

func NewProjectExampleRepository(db *gorm.DB) contract.ProjectExampleRepository {
	return &ProjectExampleRepositoryImpl{
		db:     db,
		mapper: mapper.NewProjectExampleMapper(),
	}
}

func (r *ProjectExampleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProjectExampleRepositoryImpl) Create(ctx context.Context, example *entity.ProjectExample) error {
	m := r.mapper.ToModel(example)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*example = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProjectExampleRepositoryImpl) Update(ctx context.Context, example *entity.ProjectExample) error {
	m := r.mapper.ToModel(example)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*example = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProjectExampleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProjectExample{}, id).Error
}

func (r *ProjectExampleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProjectExample, error) {
	var m model.ProjectExample
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProjectExampleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProjectExample, error) {
	var models []*model.ProjectExample
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProjectExampleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ProjectExample{}).Count(&count).Error
	return count, err
}

func (r *ProjectExampleRepositoryImpl) FindRecent(ctx context.Context, limit int, category string) ([]*entity.ProjectExample, error) {
	return r.FindAll(ctx,
		specification.ByCategory{Category: category},
		specification.MostRecent{Limit: limit},
	)
}

func (r *ProjectExampleRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredProject, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.ProjectExample
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("project_examples").
		Select("project_examples.*, 1 - (combined_embedding <=> ?) as similarity", queryVector).
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

	scored := make([]*contract.ScoredProject, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredProject{
			Example:    r.mapper.ToEntity(&res.ProjectExample),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
