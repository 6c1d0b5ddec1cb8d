package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	// CreatedLabel is the wall-clock display label ("14:05") stamped when the
	// message is persisted.
	CreatedLabel string
	// Source attribution for assistant messages grounded in a knowledge base.
	// Empty on user messages and on ungrounded replies.
	SourceName      string
	SourceUpdatedAt string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
