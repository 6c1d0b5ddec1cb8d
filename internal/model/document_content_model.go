package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentContent struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Text       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (DocumentContent) TableName() string {
	return "document_contents"
}
