package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaItem struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MediaType   string         `gorm:"type:varchar(20);not null;index"`
	URL         string         `gorm:"type:text;not null"`
	Title       string         `gorm:"type:varchar(512);not null"`
	Description string         `gorm:"type:text"`
	Tags        string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (MediaItem) TableName() string {
	return "media_items"
}
