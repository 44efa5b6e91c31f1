package dto

import (
	"time"

	"github.com/google/uuid"
)

// Embed pipeline message kinds, one per knowledge table.
const (
	EmbedKindCoverLetter = "cover_letter"
	EmbedKindProject     = "project"
	EmbedKindSkill       = "skill"
)

// PublishEmbedExampleMessage asks the consumer to (re)generate the combined
// embedding for one knowledge base row.
type PublishEmbedExampleMessage struct {
	Kind      string    `json:"kind"`
	ExampleId uuid.UUID `json:"example_id"`
}

// ListExamplesRequest carries the shared query parameters of the three list
// endpoints. Limit <= 0 disables paging; Page is 1-based.
type ListExamplesRequest struct {
	Category string `query:"category"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type CreateCoverLetterExampleRequest struct {
	JobTitle       string `json:"job_title" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	CoverLetter    string `json:"cover_letter" validate:"required"`
	Category       string `json:"category"`
}

type UpdateCoverLetterExampleRequest struct {
	Id             uuid.UUID
	JobTitle       string `json:"job_title" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	CoverLetter    string `json:"cover_letter" validate:"required"`
	Category       string `json:"category"`
}

type CoverLetterExampleResponse struct {
	Id             uuid.UUID  `json:"id"`
	JobTitle       string     `json:"job_title"`
	JobDescription string     `json:"job_description"`
	CoverLetter    string     `json:"cover_letter"`
	Category       string     `json:"category"`
	WordCount      int        `json:"word_count"`
	ParagraphCount int        `json:"paragraph_count"`
	HasEmbedding   bool       `json:"has_embedding"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type CreateProjectExampleRequest struct {
	ProjectTitle       string `json:"project_title" validate:"required"`
	ProjectDescription string `json:"project_description" validate:"required"`
	Category           string `json:"category"`
}

type UpdateProjectExampleRequest struct {
	Id                 uuid.UUID
	ProjectTitle       string `json:"project_title" validate:"required"`
	ProjectDescription string `json:"project_description" validate:"required"`
	Category           string `json:"category"`
}

type ProjectExampleResponse struct {
	Id                 uuid.UUID  `json:"id"`
	ProjectTitle       string     `json:"project_title"`
	ProjectDescription string     `json:"project_description"`
	Category           string     `json:"category"`
	ProjectType        string     `json:"project_type"`
	Technologies       []string   `json:"technologies"`
	HasEmbedding       bool       `json:"has_embedding"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

type CreateSkillExampleRequest struct {
	SkillName        string `json:"skill_name" validate:"required"`
	SkillDescription string `json:"skill_description" validate:"required"`
	Category         string `json:"category"`
	SkillCategory    string `json:"skill_category"`
	ProficiencyLevel string `json:"proficiency_level"`
}

type UpdateSkillExampleRequest struct {
	Id               uuid.UUID
	SkillName        string `json:"skill_name" validate:"required"`
	SkillDescription string `json:"skill_description" validate:"required"`
	Category         string `json:"category"`
	SkillCategory    string `json:"skill_category"`
	ProficiencyLevel string `json:"proficiency_level"`
}

type SkillExampleResponse struct {
	Id               uuid.UUID  `json:"id"`
	SkillName        string     `json:"skill_name"`
	SkillDescription string     `json:"skill_description"`
	Category         string     `json:"category"`
	SkillCategory    string     `json:"skill_category"`
	ProficiencyLevel string     `json:"proficiency_level"`
	HasEmbedding     bool       `json:"has_embedding"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

type CreateExampleResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateExampleResponse struct {
	Id uuid.UUID `json:"id"`
}
