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

type MediaItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaMapper
}

func NewMediaItemRepository(db *gorm.DB) contract.MediaItemRepository {
	return &MediaItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaMapper(),
	}
}

func (r *MediaItemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MediaItemRepositoryImpl) Create(ctx context.Context, item *entity.MediaItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *MediaItemRepositoryImpl) Update(ctx context.Context, item *entity.MediaItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *MediaItemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MediaItem{}, id).Error
}

func (r *MediaItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MediaItem, error) {
	var m model.MediaItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MediaItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MediaItem, error) {
	var models []*model.MediaItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MediaItemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.MediaItem{}).Count(&count).Error
	return count, err
}
