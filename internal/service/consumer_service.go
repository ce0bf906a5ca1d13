package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"admission-assistant-be/internal/dto"
	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/internal/repository/specification"
	"admission-assistant-be/internal/repository/unitofwork"
	"admission-assistant-be/pkg/embedding"
	"admission-assistant-be/pkg/events"
	pktNats "admission-assistant-be/pkg/nats"
	"admission-assistant-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Chunking parameters for the character-based splitter. 1500 chars is
// roughly 375 tokens, comfortably inside the embedding context window.
const (
	chunkSize    = 1500
	chunkOverlap = 200
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer_service", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.KnowledgeDocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.log.Error("consumer_service", "failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if document == nil {
		// Deleted before the consumer got to it.
		msg.Ack()
		return
	}

	chunks, err := cs.embedDocument(ctx, uow, document)
	if err != nil {
		cs.log.Error("consumer_service", "embedding failed", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
		_ = uow.KnowledgeDocumentRepository().UpdateStatus(ctx, document.Id, entity.DocumentStatusFailed)
		msg.Nack()
		return
	}

	cs.publishIngested(ctx, document, chunks)
	msg.Ack()
}

func (cs *consumerService) publishIngested(ctx context.Context, document *entity.KnowledgeDocument, chunks int) {
	if cs.eventPublisher == nil {
		return
	}
	event := events.NewDocumentIngestedEvent(document.Id.String(), document.Title, chunks)
	if err := cs.eventPublisher.Publish(ctx, event); err != nil {
		cs.log.Warn("consumer_service", "failed to publish ingest event", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}
}

func (cs *consumerService) embedDocument(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.KnowledgeDocument) (int, error) {
	content := fmt.Sprintf("Document Title: %s\n\n%s", document.Title, document.Content)
	chunks := utils.SplitText(content, chunkSize, chunkOverlap)

	cs.log.Info("consumer_service", "embedding document", map[string]interface{}{
		"document_id": document.Id.String(),
		"chunks":      len(chunks),
	})

	embeddings := make([]*entity.DocumentEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, embedding.TaskTypeDocument)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		embeddings = append(embeddings, &entity.DocumentEmbedding{
			Id:             uuid.New(),
			Content:        chunk,
			EmbeddingValue: res.Embedding.Values,
			DocumentId:     document.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	// Re-embedding replaces, never appends.
	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, document.Id); err != nil {
		return 0, err
	}
	if len(embeddings) > 0 {
		if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
			return 0, err
		}
	}
	if err := uow.KnowledgeDocumentRepository().UpdateStatus(ctx, document.Id, entity.DocumentStatusEmbedded); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}
	return len(chunks), nil
}
