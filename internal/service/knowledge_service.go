package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"kb-assistant-be/internal/constant"
	"kb-assistant-be/internal/dto"
	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/repository/specification"
	"kb-assistant-be/internal/repository/unitofwork"
	"kb-assistant-be/pkg/textstore"

	"github.com/google/uuid"
)

type UploadedFile struct {
	Name       string
	StoredPath string
	Size       int64
}

type IKnowledgeService interface {
	GetAll(ctx context.Context) ([]dto.KnowledgeBaseResponse, error)
	Create(ctx context.Context, req *dto.CreateKnowledgeBaseRequest) (*dto.KnowledgeBaseResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeBaseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Upload(ctx context.Context, knowledgeBaseId uuid.UUID, files []UploadedFile) ([]dto.DocumentDTO, error)
	DeleteDocument(ctx context.Context, knowledgeBaseId, documentId uuid.UUID) error
	GetDocumentContent(ctx context.Context, knowledgeBaseId, documentId uuid.UUID) (*dto.DocumentContentResponse, error)
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	textStore        *textstore.Store
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	textStore *textstore.Store,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		textStore:        textStore,
	}
}

var (
	kbIcons = []string{"📄", "❓", "📗", "🔧", "📊", "🎯", "💡", "📋"}

	// Tailwind gradient classes consumed by the frontend card component.
	kbColors = []string{
		"from-blue-500 to-cyan-400",
		"from-purple-500 to-pink-400",
		"from-orange-500 to-yellow-400",
		"from-green-500 to-emerald-400",
	}
)

// contentPreviewRunes caps the document content preview endpoint.
const contentPreviewRunes = 2000

func (s *knowledgeService) GetAll(ctx context.Context) ([]dto.KnowledgeBaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kbs, err := uow.KnowledgeBaseRepository().FindAll(ctx,
		specification.WithDocuments{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.KnowledgeBaseResponse, 0, len(kbs))
	for _, kb := range kbs {
		responses = append(responses, *toKnowledgeBaseResponse(kb))
	}
	return responses, nil
}

func (s *knowledgeService) Create(ctx context.Context, req *dto.CreateKnowledgeBaseRequest) (*dto.KnowledgeBaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb := &entity.KnowledgeBase{
		Id:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Icon:         kbIcons[rand.Intn(len(kbIcons))],
		Color:        kbColors[rand.Intn(len(kbColors))],
		UpdatedLabel: constant.LabelJustNow,
		CreatedAt:    time.Now(),
	}

	if err := uow.KnowledgeBaseRepository().Create(ctx, kb); err != nil {
		return nil, err
	}

	return toKnowledgeBaseResponse(kb), nil
}

func (s *knowledgeService) Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeBaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: id}, specification.WithDocuments{})
	if err != nil {
		return nil, err
	}
	if kb == nil {
		return nil, errors.New("knowledge base not found")
	}

	return toKnowledgeBaseResponse(kb), nil
}

func (s *knowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if kb == nil {
		return errors.New("knowledge base not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByKnowledgeBaseID{KnowledgeBaseID: id})
	if err != nil {
		return err
	}
	for _, doc := range documents {
		if err := uow.DocumentContentRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
			return err
		}
		s.textStore.Invalidate(doc.Id)
	}

	if err := uow.DocumentRepository().DeleteAllByKnowledgeBaseId(ctx, id); err != nil {
		return err
	}
	if err := uow.KnowledgeBaseRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *knowledgeService) Upload(ctx context.Context, knowledgeBaseId uuid.UUID, files []UploadedFile) ([]dto.DocumentDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: knowledgeBaseId})
	if err != nil {
		return nil, err
	}
	if kb == nil {
		return nil, errors.New("knowledge base not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	created := make([]*entity.Document, 0, len(files))
	for _, file := range files {
		document := &entity.Document{
			Id:              uuid.New(),
			KnowledgeBaseId: knowledgeBaseId,
			Name:            file.Name,
			StoredPath:      file.StoredPath,
			Size:            file.Size,
			Status:          entity.DocumentStatusIndexing,
			UploadedLabel:   constant.LabelJustNow,
			CreatedAt:       time.Now(),
		}
		if err := uow.DocumentRepository().Create(ctx, document); err != nil {
			return nil, err
		}
		created = append(created, document)
	}

	kb.UpdatedLabel = constant.LabelJustNow + "更新"
	if err := uow.KnowledgeBaseRepository().Update(ctx, kb); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Queue extraction only after the documents are durable.
	for _, document := range created {
		payload, err := json.Marshal(dto.IndexDocumentMessage{DocumentId: document.Id})
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			return nil, err
		}
	}

	responses := make([]dto.DocumentDTO, 0, len(created))
	for _, document := range created {
		responses = append(responses, toDocumentDTO(document))
	}
	return responses, nil
}

func (s *knowledgeService) DeleteDocument(ctx context.Context, knowledgeBaseId, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.ByKnowledgeBaseID{KnowledgeBaseID: knowledgeBaseId},
	)
	if err != nil {
		return err
	}
	if document == nil {
		return errors.New("document not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentContentRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.textStore.Invalidate(documentId)
	return nil
}

func (s *knowledgeService) GetDocumentContent(ctx context.Context, knowledgeBaseId, documentId uuid.UUID) (*dto.DocumentContentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.ByKnowledgeBaseID{KnowledgeBaseID: knowledgeBaseId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, errors.New("document not found")
	}

	text := s.textStore.Text(ctx, documentId)
	preview := text
	truncated := false
	if runes := []rune(text); len(runes) > contentPreviewRunes {
		preview = string(runes[:contentPreviewRunes])
		truncated = true
	}

	return &dto.DocumentContentResponse{
		Id:        document.Id,
		Name:      document.Name,
		Status:    string(document.Status),
		Preview:   preview,
		Truncated: truncated,
	}, nil
}

func toKnowledgeBaseResponse(kb *entity.KnowledgeBase) *dto.KnowledgeBaseResponse {
	files := make([]dto.DocumentDTO, 0, len(kb.Documents))
	for i := range kb.Documents {
		files = append(files, toDocumentDTO(&kb.Documents[i]))
	}

	return &dto.KnowledgeBaseResponse{
		Id:          kb.Id,
		Name:        kb.Name,
		Description: kb.Description,
		Icon:        kb.Icon,
		Color:       kb.Color,
		FileCount:   len(files),
		UpdatedAt:   kb.UpdatedLabel,
		Files:       files,
	}
}

func toDocumentDTO(document *entity.Document) dto.DocumentDTO {
	return dto.DocumentDTO{
		Id:         document.Id,
		Name:       document.Name,
		Size:       document.Size,
		UploadedAt: document.UploadedLabel,
		Status:     string(document.Status),
	}
}
