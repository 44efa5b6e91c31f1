package unitofwork

import (
	"context"

	"coverletter-ai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CoverLetterExampleRepository() contract.CoverLetterExampleRepository
	ProjectExampleRepository() contract.ProjectExampleRepository
	SkillExampleRepository() contract.SkillExampleRepository
}
