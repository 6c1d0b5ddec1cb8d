package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessage struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role            string         `gorm:"type:varchar(50);not null"`
	Content         string         `gorm:"type:text;not null"`
	CreatedLabel    string         `gorm:"type:varchar(50)"`
	SourceName      string         `gorm:"type:varchar(512)"`
	SourceUpdatedAt string         `gorm:"type:varchar(50)"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
