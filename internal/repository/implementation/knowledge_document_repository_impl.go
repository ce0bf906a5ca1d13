package implementation

import (
	"context"
	"errors"

	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/mapper"
	"admission-assistant-be/internal/model"
	"admission-assistant-be/internal/repository/contract"
	"admission-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeDocumentRepository(db *gorm.DB) contract.KnowledgeDocumentRepository {
	return &KnowledgeDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeDocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeDocumentRepositoryImpl) Create(ctx context.Context, document *entity.KnowledgeDocument) error {
	m := r.mapper.DocumentToModel(document)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.DocumentToEntity(m)
	return nil
}

func (r *KnowledgeDocumentRepositoryImpl) Update(ctx context.Context, document *entity.KnowledgeDocument) error {
	m := r.mapper.DocumentToModel(document)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.DocumentToEntity(m)
	return nil
}

func (r *KnowledgeDocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgeDocument{}, id).Error
}

func (r *KnowledgeDocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error) {
	var m model.KnowledgeDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DocumentToEntity(&m), nil
}

func (r *KnowledgeDocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error) {
	var models []*model.KnowledgeDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.DocumentsToEntities(models), nil
}

func (r *KnowledgeDocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeDocument{}).Count(&count).Error
	return count, err
}

func (r *KnowledgeDocumentRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DocumentStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.KnowledgeDocument{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}
