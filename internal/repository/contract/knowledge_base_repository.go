package contract

import (
	"context"

	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeBaseRepository interface {
	Create(ctx context.Context, kb *entity.KnowledgeBase) error
	Update(ctx context.Context, kb *entity.KnowledgeBase) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeBase, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeBase, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
