package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusEmbedded DocumentStatus = "embedded"
	DocumentStatusFailed   DocumentStatus = "failed"
)

// KnowledgeDocument is one admission-content document in the knowledge
// base. Embedding happens asynchronously after ingestion.
type KnowledgeDocument struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Status    DocumentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentEmbedding is one embedded chunk of a knowledge document.
type DocumentEmbedding struct {
	Id             uuid.UUID
	Content        string
	EmbeddingValue []float32
	DocumentId     uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
}
