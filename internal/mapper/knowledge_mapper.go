package mapper

import (
	"encoding/json"
	"time"

	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CoverLetterExampleMapper struct{}

func NewCoverLetterExampleMapper() *CoverLetterExampleMapper {
	return &CoverLetterExampleMapper{}
}

func (m *CoverLetterExampleMapper) ToEntity(c *model.CoverLetterExample) *entity.CoverLetterExample {
	if c == nil {
		return nil
	}

	var metadata entity.CoverLetterMetadata
	decodeMetadata(c.Metadata, &metadata)

	return &entity.CoverLetterExample{
		Id:                c.Id,
		JobTitle:          c.JobTitle,
		JobDescription:    c.JobDescription,
		CoverLetter:       c.CoverLetter,
		Category:          c.Category,
		CombinedEmbedding: vectorSlice(c.CombinedEmbedding),
		Metadata:          metadata,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         optionalTime(c.UpdatedAt),
		DeletedAt:         deletedAtTime(c.DeletedAt),
		IsDeleted:         c.DeletedAt.Valid,
	}
}

func (m *CoverLetterExampleMapper) ToModel(c *entity.CoverLetterExample) *model.CoverLetterExample {
	if c == nil {
		return nil
	}

	return &model.CoverLetterExample{
		Id:                c.Id,
		JobTitle:          c.JobTitle,
		JobDescription:    c.JobDescription,
		CoverLetter:       c.CoverLetter,
		Category:          c.Category,
		CombinedEmbedding: toVector(c.CombinedEmbedding),
		Metadata:          encodeMetadata(c.Metadata),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         derefTime(c.UpdatedAt),
		DeletedAt:         toDeletedAt(c.DeletedAt, c.IsDeleted),
	}
}

func (m *CoverLetterExampleMapper) ToEntities(models []*model.CoverLetterExample) []*entity.CoverLetterExample {
	entities := make([]*entity.CoverLetterExample, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

type ProjectExampleMapper struct{}

func NewProjectExampleMapper() *ProjectExampleMapper {
	return &ProjectExampleMapper{}
}

func (m *ProjectExampleMapper) ToEntity(p *model.ProjectExample) *entity.ProjectExample {
	if p == nil {
		return nil
	}

	var metadata entity.ProjectMetadata
	decodeMetadata(p.Metadata, &metadata)
	if metadata.Technologies == nil {
		metadata.Technologies = []string{}
	}

	return &entity.ProjectExample{
		Id:                 p.Id,
		ProjectTitle:       p.ProjectTitle,
		ProjectDescription: p.ProjectDescription,
		Category:           p.Category,
		CombinedEmbedding:  vectorSlice(p.CombinedEmbedding),
		Metadata:           metadata,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          optionalTime(p.UpdatedAt),
		DeletedAt:          deletedAtTime(p.DeletedAt),
		IsDeleted:          p.DeletedAt.Valid,
	}
}

func (m *ProjectExampleMapper) ToModel(p *entity.ProjectExample) *model.ProjectExample {
	if p == nil {
		return nil
	}

	return &model.ProjectExample{
		Id:                 p.Id,
		ProjectTitle:       p.ProjectTitle,
		ProjectDescription: p.ProjectDescription,
		Category:           p.Category,
		CombinedEmbedding:  toVector(p.CombinedEmbedding),
		Metadata:           encodeMetadata(p.Metadata),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          derefTime(p.UpdatedAt),
		DeletedAt:          toDeletedAt(p.DeletedAt, p.IsDeleted),
	}
}

func (m *ProjectExampleMapper) ToEntities(models []*model.ProjectExample) []*entity.ProjectExample {
	entities := make([]*entity.ProjectExample, len(models))
	for i, p := range models {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

type SkillExampleMapper struct{}

func NewSkillExampleMapper() *SkillExampleMapper {
	return &SkillExampleMapper{}
}

func (m *SkillExampleMapper) ToEntity(s *model.SkillExample) *entity.SkillExample {
	if s == nil {
		return nil
	}

	var metadata entity.SkillMetadata
	decodeMetadata(s.Metadata, &metadata)

	return &entity.SkillExample{
		Id:                s.Id,
		SkillName:         s.SkillName,
		SkillDescription:  s.SkillDescription,
		Category:          s.Category,
		CombinedEmbedding: vectorSlice(s.CombinedEmbedding),
		Metadata:          metadata,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         optionalTime(s.UpdatedAt),
		DeletedAt:         deletedAtTime(s.DeletedAt),
		IsDeleted:         s.DeletedAt.Valid,
	}
}

func (m *SkillExampleMapper) ToModel(s *entity.SkillExample) *model.SkillExample {
	if s == nil {
		return nil
	}

	return &model.SkillExample{
		Id:                s.Id,
		SkillName:         s.SkillName,
		SkillDescription:  s.SkillDescription,
		Category:          s.Category,
		CombinedEmbedding: toVector(s.CombinedEmbedding),
		Metadata:          encodeMetadata(s.Metadata),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         derefTime(s.UpdatedAt),
		DeletedAt:         toDeletedAt(s.DeletedAt, s.IsDeleted),
	}
}

func (m *SkillExampleMapper) ToEntities(models []*model.SkillExample) []*entity.SkillExample {
	entities := make([]*entity.SkillExample, len(models))
	for i, s := range models {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

// decodeMetadata tolerates NULL and malformed JSONB; missing fields keep their
// zero values so stale rows never break retrieval.
func decodeMetadata(raw datatypes.JSON, out any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, out)
}

func encodeMetadata(in any) datatypes.JSON {
	raw, err := json.Marshal(in)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}

// toVector maps an absent embedding to SQL NULL; pgvector rejects empty
// vectors on insert.
func toVector(s []float32) *pgvector.Vector {
	if len(s) == 0 {
		return nil
	}
	v := pgvector.NewVector(s)
	return &v
}

func vectorSlice(v *pgvector.Vector) []float32 {
	if v == nil {
		return nil
	}
	return v.Slice()
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func deletedAtTime(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func toDeletedAt(t *time.Time, isDeleted bool) gorm.DeletedAt {
	if t != nil {
		return gorm.DeletedAt{Time: *t, Valid: true}
	}
	if isDeleted {
		return gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return gorm.DeletedAt{}
}
