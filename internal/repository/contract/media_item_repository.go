package contract

import (
	"context"

	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MediaItemRepository interface {
	Create(ctx context.Context, item *entity.MediaItem) error
	Update(ctx context.Context, item *entity.MediaItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MediaItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MediaItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
