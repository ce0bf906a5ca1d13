package contract

import (
	"context"

	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// RetrievedChunk pairs a chunk's text with its parent document title for
// prompt assembly.
type RetrievedChunk struct {
	Content       string
	DocumentTitle string
}

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilar returns the limit nearest chunks by cosine distance.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*RetrievedChunk, error)
}
