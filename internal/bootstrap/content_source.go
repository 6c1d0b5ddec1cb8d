package bootstrap

import (
	"context"

	"kb-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// documentContentSource feeds the text store from the document_contents
// table.
type documentContentSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func (s *documentContentSource) LoadContent(ctx context.Context, documentID uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	content, err := uow.DocumentContentRepository().FindByDocumentId(ctx, documentID)
	if err != nil {
		return "", err
	}
	if content == nil {
		return "", nil
	}
	return content.Text, nil
}
