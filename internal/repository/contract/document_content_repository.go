package contract

import (
	"context"

	"kb-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentContentRepository interface {
	// Upsert writes the extracted text, replacing any previous extraction of
	// the same document.
	Upsert(ctx context.Context, content *entity.DocumentContent) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.DocumentContent, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
}
