package mapper

import (
	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) DocumentToEntity(d *model.KnowledgeDocument) *entity.KnowledgeDocument {
	if d == nil {
		return nil
	}
	return &entity.KnowledgeDocument{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		Status:    entity.DocumentStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (m *KnowledgeMapper) DocumentToModel(d *entity.KnowledgeDocument) *model.KnowledgeDocument {
	if d == nil {
		return nil
	}
	return &model.KnowledgeDocument{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (m *KnowledgeMapper) DocumentsToEntities(docs []*model.KnowledgeDocument) []*entity.KnowledgeDocument {
	entities := make([]*entity.KnowledgeDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.DocumentToEntity(d)
	}
	return entities
}

func (m *KnowledgeMapper) EmbeddingToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}
	return &entity.DocumentEmbedding{
		Id:             e.Id,
		Content:        e.Content,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *KnowledgeMapper) EmbeddingToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}
	return &model.DocumentEmbedding{
		Id:             e.Id,
		Content:        e.Content,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}
