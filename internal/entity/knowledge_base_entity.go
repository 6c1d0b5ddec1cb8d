package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeBase struct {
	Id          uuid.UUID
	Name        string
	Description string
	Icon        string
	Color       string
	// UpdatedLabel is the display label shown next to the knowledge base,
	// e.g. "3天前" or "刚刚". The frontend renders it verbatim.
	UpdatedLabel string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool

	Documents []Document
}
