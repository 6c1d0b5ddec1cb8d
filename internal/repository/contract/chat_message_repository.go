package contract

import (
	"context"

	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
