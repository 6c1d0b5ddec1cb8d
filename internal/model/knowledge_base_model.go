package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeBase struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Description  string         `gorm:"type:text"`
	Icon         string         `gorm:"type:varchar(50)"`
	Color        string         `gorm:"type:varchar(255)"`
	UpdatedLabel string         `gorm:"type:varchar(50)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Documents []Document `gorm:"foreignKey:KnowledgeBaseId"`
}

func (KnowledgeBase) TableName() string {
	return "knowledge_bases"
}
