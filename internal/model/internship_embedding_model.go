package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type InternshipEmbedding struct {
	InternshipID string          `gorm:"type:varchar(64);primaryKey" json:"internship_id"`
	Embedding    pgvector.Vector `gorm:"type:vector(3072)" json:"embedding"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (e *InternshipEmbedding) TableName() string {
	return "internship_embeddings"
}
