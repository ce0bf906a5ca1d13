package contract

import (
	"context"

	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// AttachUser links an anonymous session to a newly authenticated user.
	AttachUser(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) error
}
