package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectExample struct {
	Id                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectTitle       string          `gorm:"type:varchar(255);not null"`
	ProjectDescription string          `gorm:"type:text"`
	Category           string          `gorm:"type:varchar(100);index"`
	// NULL until the embed consumer processes the row.
	CombinedEmbedding *pgvector.Vector `gorm:"type:vector(1024)"`
	Metadata           datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt          time.Time       `gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt  `gorm:"index"`
}

func (ProjectExample) TableName() string {
	return "project_examples"
}
