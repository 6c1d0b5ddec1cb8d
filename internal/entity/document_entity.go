package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusIndexing DocumentStatus = "indexing"
	DocumentStatusSynced   DocumentStatus = "synced"
	DocumentStatusFailed   DocumentStatus = "failed"
)

type Document struct {
	Id              uuid.UUID
	KnowledgeBaseId uuid.UUID
	Name            string
	StoredPath      string
	Size            int64
	Status          DocumentStatus
	// UploadedLabel is the display label shown on the document row ("刚刚",
	// "2小时前"). It doubles as the source freshness label in chat replies.
	UploadedLabel string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

// DocumentContent holds the extracted plain text of one document. It is kept
// apart from Document so listing documents never drags megabytes of text
// along.
type DocumentContent struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Text       string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
