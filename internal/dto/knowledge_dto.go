package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestDocumentRequest struct {
	Title   string `json:"title" validate:"required,min=2"`
	Content string `json:"content" validate:"required,min=10"`
}

type IngestDocumentResponse struct {
	Id     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Status string    `json:"status"`
}

// PublishEmbedDocumentMessage is the payload queued for the embedding
// consumer.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type GetDocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	ChunkCount int64     `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}
