package service

import (
	"context"
	"encoding/json"
	"time"

	"admission-assistant-be/internal/dto"
	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/internal/repository/specification"
	"admission-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	GetDocuments(ctx context.Context) ([]dto.GetDocumentResponse, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	log              logger.ILogger
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		log:              log,
	}
}

// Ingest stores the document as pending and queues it for chunking and
// embedding. The consumer flips its status once embeddings land.
func (s *knowledgeService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document := &entity.KnowledgeDocument{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Status:    entity.DocumentStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uow.KnowledgeDocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: document.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	s.log.Info("knowledge_service", "document queued for embedding", map[string]interface{}{
		"document_id": document.Id.String(),
		"title":       document.Title,
	})

	return &dto.IngestDocumentResponse{
		Id:     document.Id,
		Title:  document.Title,
		Status: string(document.Status),
	}, nil
}

func (s *knowledgeService) GetDocuments(ctx context.Context) ([]dto.GetDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.KnowledgeDocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.GetDocumentResponse, 0, len(documents))
	for _, document := range documents {
		chunks, err := uow.DocumentEmbeddingRepository().Count(ctx,
			specification.ByDocumentID{DocumentID: document.Id},
		)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.GetDocumentResponse{
			Id:         document.Id,
			Title:      document.Title,
			Status:     string(document.Status),
			ChunkCount: chunks,
			CreatedAt:  document.CreatedAt,
		})
	}
	return result, nil
}

func (s *knowledgeService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.KnowledgeDocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
