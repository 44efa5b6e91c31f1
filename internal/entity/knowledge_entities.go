package entity

import (
	"time"

	"github.com/google/uuid"
)

// CoverLetterMetadata captures writing-shape stats recorded at ingestion time.
type CoverLetterMetadata struct {
	WordCount      int `json:"wordCount"`
	ParagraphCount int `json:"paragraphCount"`
}

type ProjectMetadata struct {
	ProjectType  string   `json:"projectType"`
	Technologies []string `json:"technologies"`
	WordCount    int      `json:"wordCount"`
}

type SkillMetadata struct {
	SkillCategory    string `json:"skillCategory"`
	ProficiencyLevel string `json:"proficiencyLevel"`
}

type CoverLetterExample struct {
	Id                uuid.UUID
	JobTitle          string
	JobDescription    string
	CoverLetter       string
	Category          string
	CombinedEmbedding []float32
	Metadata          CoverLetterMetadata
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}

type ProjectExample struct {
	Id                 uuid.UUID
	ProjectTitle       string
	ProjectDescription string
	Category           string
	CombinedEmbedding  []float32
	Metadata           ProjectMetadata
	CreatedAt          time.Time
	UpdatedAt          *time.Time
	DeletedAt          *time.Time
	IsDeleted          bool
}

type SkillExample struct {
	Id                uuid.UUID
	SkillName         string
	SkillDescription  string
	Category          string
	CombinedEmbedding []float32
	Metadata          SkillMetadata
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}

// CombinedText is the document fed to the embedding provider; the stored
// vector always corresponds to this exact concatenation.
func (c *CoverLetterExample) CombinedText() string {
	return c.JobTitle + " " + c.JobDescription + " " + c.CoverLetter
}

func (p *ProjectExample) CombinedText() string {
	return p.ProjectTitle + " " + p.ProjectDescription
}

func (s *SkillExample) CombinedText() string {
	return s.SkillName + " " + s.SkillDescription
}
