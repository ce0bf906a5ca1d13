package contract

import (
	"context"

	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeDocumentRepository interface {
	Create(ctx context.Context, document *entity.KnowledgeDocument) error
	Update(ctx context.Context, document *entity.KnowledgeDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DocumentStatus) error
}
