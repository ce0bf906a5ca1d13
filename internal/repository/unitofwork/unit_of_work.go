package unitofwork

import (
	"context"

	"admission-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	MediaItemRepository() contract.MediaItemRepository
}
