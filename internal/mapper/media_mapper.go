package mapper

import (
	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/model"
)

type MediaMapper struct{}

func NewMediaMapper() *MediaMapper {
	return &MediaMapper{}
}

func (m *MediaMapper) ToEntity(item *model.MediaItem) *entity.MediaItem {
	if item == nil {
		return nil
	}
	return &entity.MediaItem{
		Id:          item.Id,
		MediaType:   item.MediaType,
		URL:         item.URL,
		Title:       item.Title,
		Description: item.Description,
		Tags:        item.Tags,
		CreatedAt:   item.CreatedAt,
	}
}

func (m *MediaMapper) ToModel(item *entity.MediaItem) *model.MediaItem {
	if item == nil {
		return nil
	}
	return &model.MediaItem{
		Id:          item.Id,
		MediaType:   item.MediaType,
		URL:         item.URL,
		Title:       item.Title,
		Description: item.Description,
		Tags:        item.Tags,
		CreatedAt:   item.CreatedAt,
	}
}

func (m *MediaMapper) ToEntities(items []*model.MediaItem) []*entity.MediaItem {
	entities := make([]*entity.MediaItem, len(items))
	for i, item := range items {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
