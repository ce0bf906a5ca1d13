package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeDocument struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string         `gorm:"type:varchar(512);not null"`
	Content   string         `gorm:"type:text;not null"`
	Status    string         `gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
