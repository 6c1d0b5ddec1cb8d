package contract

import (
	"context"

	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByKnowledgeBaseId(ctx context.Context, knowledgeBaseId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
