package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventDocumentSynced      = "DOCUMENT_SYNCED"
	EventDocumentIndexFailed = "DOCUMENT_INDEX_FAILED"
)

// NewDocumentSyncedEvent is emitted after a document's text has been
// extracted and persisted. Other instances drop their cached copy of the
// document text when they see it.
func NewDocumentSyncedEvent(documentId, knowledgeBaseId uuid.UUID) Event {
	return BaseEvent{
		Type: EventDocumentSynced,
		Data: map[string]interface{}{
			"document_id":       documentId.String(),
			"knowledge_base_id": knowledgeBaseId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentIndexFailedEvent(documentId uuid.UUID, reason string) Event {
	return BaseEvent{
		Type: EventDocumentIndexFailed,
		Data: map[string]interface{}{
			"document_id": documentId.String(),
			"reason":      reason,
		},
		OccurredAt: time.Now(),
	}
}
