package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KnowledgeBaseId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(512);not null"`
	StoredPath      string         `gorm:"type:text"`
	Size            int64          `gorm:"not null;default:0"`
	Status          string         `gorm:"type:varchar(50);not null;default:'indexing';index"`
	UploadedLabel   string         `gorm:"type:varchar(50)"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
