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

type CoverLetterExampleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CoverLetterExampleMapper
}

func NewCoverLetterExampleRepository(db *gorm.DB) contract.CoverLetterExampleRepository {
	return &CoverLetterExampleRepositoryImpl{
		db:     db,
		mapper: mapper.NewCoverLetterExampleMapper(),
	}
}

func (r *CoverLetterExampleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CoverLetterExampleRepositoryImpl) Create(ctx context.Context, example *entity.CoverLetterExample) error {
	m := r.mapper.ToModel(example)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*example = *r.mapper.ToEntity(m)
	return nil
}

func (r *CoverLetterExampleRepositoryImpl) Update(ctx context.Context, example *entity.CoverLetterExample) error {
	m := r.mapper.ToModel(example)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*example = *r.mapper.ToEntity(m)
	return nil
}

func (r *CoverLetterExampleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CoverLetterExample{}, id).Error
}

func (r *CoverLetterExampleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CoverLetterExample, error) {
	var m model.CoverLetterExample
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CoverLetterExampleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CoverLetterExample, error) {
	var models []*model.CoverLetterExample
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CoverLetterExampleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CoverLetterExample{}).Count(&count).Error
	return count, err
}

func (r *CoverLetterExampleRepositoryImpl) FindRecent(ctx context.Context, limit int, category string) ([]*entity.CoverLetterExample, error) {
	return r.FindAll(ctx,
		specification.ByCategory{Category: category},
		specification.MostRecent{Limit: limit},
	)
}

func (r *CoverLetterExampleRepositoryImpl) FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.CoverLetterExample, error) {
	if len(ids) == 0 {
		return []*entity.CoverLetterExample{}, nil
	}
	return r.FindAll(ctx, specification.ByIDs{IDs: ids})
}

// SearchSimilarWithScore returns examples with similarity scores, filtered by threshold.
// Cosine distance in pgvector is 1 - cosine_similarity, so
// 1 - (combined_embedding <=> query_vector) recovers the similarity.
func (r *CoverLetterExampleRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredCoverLetter, error) {
	if limit <= 0 {
		limit = 4
	}

	type result struct {
		model.CoverLetterExample
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("cover_letter_examples").
		Select("cover_letter_examples.*, 1 - (combined_embedding <=> ?) as similarity", queryVector).
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

	scored := make([]*contract.ScoredCoverLetter, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCoverLetter{
			Example:    r.mapper.ToEntity(&res.CoverLetterExample),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
