package unitofwork

import (
	"context"

	"kb-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	KnowledgeBaseRepository() contract.KnowledgeBaseRepository
	DocumentRepository() contract.DocumentRepository
	DocumentContentRepository() contract.DocumentContentRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
