package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CoverLetterExample struct {
	Id                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobTitle          string          `gorm:"type:varchar(255);not null"`
	JobDescription    string          `gorm:"type:text"`
	CoverLetter       string          `gorm:"type:text"`
	Category          string          `gorm:"type:varchar(100);index"`
	// Cohere embed-english-v3.0 uses 1024 dimensions. NULL until the embed
	// consumer processes the row.
	CombinedEmbedding *pgvector.Vector `gorm:"type:vector(1024)"`
	Metadata          datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt         time.Time       `gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"`
}

func (CoverLetterExample) TableName() string {
	return "cover_letter_examples"
}
