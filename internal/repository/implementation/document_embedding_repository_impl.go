package implementation

import (
	"context"

	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/mapper"
	"admission-assistant-be/internal/model"
	"admission-assistant-be/internal/repository/contract"
	"admission-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewDocumentEmbeddingRepository(db *gorm.DB) contract.DocumentEmbeddingRepository {
	return &DocumentEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *DocumentEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.DocumentEmbedding) error {
	m := r.mapper.EmbeddingToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.EmbeddingToEntity(m)
	return nil
}

func (r *DocumentEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.EmbeddingToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*embeddings[i] = *r.mapper.EmbeddingToEntity(m)
	}
	return nil
}

func (r *DocumentEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DocumentEmbedding{}, id).Error
}

func (r *DocumentEmbeddingRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("document_id = ?", documentId).
		Delete(&model.DocumentEmbedding{}).Error
}

func (r *DocumentEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error) {
	var models []*model.DocumentEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.DocumentEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.EmbeddingToEntity(m)
	}
	return entities, nil
}

func (r *DocumentEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentEmbedding{}).Count(&count).Error
	return count, err
}

func (r *DocumentEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.RetrievedChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// pgvector cosine distance: embedding_value <=> vector. Join the
	// parent document for its title and to exclude soft-deleted docs.
	type row struct {
		Content       string
		DocumentTitle string
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Table("document_embeddings").
		Select("document_embeddings.content, knowledge_documents.title AS document_title").
		Joins("JOIN knowledge_documents ON knowledge_documents.id = document_embeddings.document_id").
		Where("document_embeddings.deleted_at IS NULL").
		Where("knowledge_documents.deleted_at IS NULL").
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]*contract.RetrievedChunk, len(rows))
	for i, row := range rows {
		chunks[i] = &contract.RetrievedChunk{
			Content:       row.Content,
			DocumentTitle: row.DocumentTitle,
		}
	}
	return chunks, nil
}
