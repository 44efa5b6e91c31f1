package search

import (
	"context"

	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/repository/contract"
	"coverletter-ai-be/internal/repository/specification"
	"coverletter-ai-be/internal/repository/unitofwork"
	"coverletter-ai-be/pkg/embedding"

	"github.com/google/uuid"
)

// Function-field fakes so each test overrides only the calls it cares about.

type fakeCoverLetterRepo struct {
	searchFn    func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredCoverLetter, error)
	recentFn    func(ctx context.Context, limit int, category string) ([]*entity.CoverLetterExample, error)
	findByIdsFn func(ctx context.Context, ids []uuid.UUID) ([]*entity.CoverLetterExample, error)
}

func (f *fakeCoverLetterRepo) Create(ctx context.Context, example *entity.CoverLetterExample) error {
	return nil
}
func (f *fakeCoverLetterRepo) Update(ctx context.Context, example *entity.CoverLetterExample) error {
	return nil
}
func (f *fakeCoverLetterRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeCoverLetterRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CoverLetterExample, error) {
	return nil, nil
}
func (f *fakeCoverLetterRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CoverLetterExample, error) {
	return nil, nil
}
func (f *fakeCoverLetterRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeCoverLetterRepo) FindRecent(ctx context.Context, limit int, category string) ([]*entity.CoverLetterExample, error) {
	if f.recentFn == nil {
		return nil, nil
	}
	return f.recentFn(ctx, limit, category)
}
func (f *fakeCoverLetterRepo) FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.CoverLetterExample, error) {
	if f.findByIdsFn == nil {
		return nil, nil
	}
	return f.findByIdsFn(ctx, ids)
}
func (f *fakeCoverLetterRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredCoverLetter, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, embedding, limit, threshold, category)
}

type fakeProjectRepo struct {
	searchFn func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredProject, error)
	recentFn func(ctx context.Context, limit int, category string) ([]*entity.ProjectExample, error)
}

func (f *fakeProjectRepo) Create(ctx context.Context, example *entity.ProjectExample) error {
	return nil
}
func (f *fakeProjectRepo) Update(ctx context.Context, example *entity.ProjectExample) error {
	return nil
}
func (f *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeProjectRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProjectExample, error) {
	return nil, nil
}
func (f *fakeProjectRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProjectExample, error) {
	return nil, nil
}
func (f *fakeProjectRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeProjectRepo) FindRecent(ctx context.Context, limit int, category string) ([]*entity.ProjectExample, error) {
	if f.recentFn == nil {
		return nil, nil
	}
	return f.recentFn(ctx, limit, category)
}
func (f *fakeProjectRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredProject, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, embedding, limit, threshold, category)
}

type fakeSkillRepo struct {
	searchFn func(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredSkill, error)
	recentFn func(ctx context.Context, limit int, category string) ([]*entity.SkillExample, error)
}

func (f *fakeSkillRepo) Create(ctx context.Context, example *entity.SkillExample) error { return nil }
func (f *fakeSkillRepo) Update(ctx context.Context, example *entity.SkillExample) error { return nil }
func (f *fakeSkillRepo) Delete(ctx context.Context, id uuid.UUID) error                 { return nil }
func (f *fakeSkillRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SkillExample, error) {
	return nil, nil
}
func (f *fakeSkillRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SkillExample, error) {
	return nil, nil
}
func (f *fakeSkillRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeSkillRepo) FindRecent(ctx context.Context, limit int, category string) ([]*entity.SkillExample, error) {
	if f.recentFn == nil {
		return nil, nil
	}
	return f.recentFn(ctx, limit, category)
}
func (f *fakeSkillRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredSkill, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, embedding, limit, threshold, category)
}

type fakeUnitOfWork struct {
	coverLetters *fakeCoverLetterRepo
	projects     *fakeProjectRepo
	skills       *fakeSkillRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		coverLetters: &fakeCoverLetterRepo{},
		projects:     &fakeProjectRepo{},
		skills:       &fakeSkillRepo{},
	}
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }
func (f *fakeUnitOfWork) CoverLetterExampleRepository() contract.CoverLetterExampleRepository {
	return f.coverLetters
}
func (f *fakeUnitOfWork) ProjectExampleRepository() contract.ProjectExampleRepository {
	return f.projects
}
func (f *fakeUnitOfWork) SkillExampleRepository() contract.SkillExampleRepository {
	return f.skills
}

var _ unitofwork.UnitOfWork = (*fakeUnitOfWork)(nil)

type fakeEmbeddingProvider struct {
	vector []float32
	err    error
}

func (f *fakeEmbeddingProvider) Generate(ctx context.Context, text string, inputType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{Embedding: f.vector}, nil
}
