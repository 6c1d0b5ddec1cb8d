package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kb-assistant-be/internal/dto"
	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/pkg/logger"
	"kb-assistant-be/internal/repository/specification"
	"kb-assistant-be/internal/repository/unitofwork"
	"kb-assistant-be/pkg/events"
	"kb-assistant-be/pkg/extract"
	pktNats "kb-assistant-be/pkg/nats"
	"kb-assistant-be/pkg/textstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIndexerService interface {
	Consume(ctx context.Context) error
	RequeueUnfinished(ctx context.Context) error
}

type indexerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	textStore      *textstore.Store
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	textStore *textstore.Store,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IIndexerService {
	return &indexerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		textStore:      textStore,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

// RequeueUnfinished republishes index jobs for documents still marked
// indexing. The in-memory queue does not survive a restart, so anything
// caught mid-extraction would otherwise stay stuck.
func (s *indexerService) RequeueUnfinished(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.DocumentStatusIndexing)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return err
	}

	for _, document := range documents {
		payload, err := json.Marshal(dto.IndexDocumentMessage{DocumentId: document.Id})
		if err != nil {
			return err
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.SetContext(ctx)
		if err := s.pubSub.Publish(s.topicName, msg); err != nil {
			return err
		}
	}

	if len(documents) > 0 {
		s.log.Info("indexer", "Requeued unfinished documents", map[string]interface{}{"count": len(documents)})
	}
	return nil
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("indexer", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	s.log.Info("indexer", "Indexing document", map[string]interface{}{"document_id": payload.DocumentId})

	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		s.log.Error("indexer", "Failed to load document", map[string]interface{}{"document_id": payload.DocumentId, "error": err.Error()})
		msg.Nack() // retriable
		return
	}
	if document == nil {
		// Deleted between upload and processing. Nothing to do.
		msg.Ack()
		return
	}

	text, err := extract.FromFile(document.StoredPath, document.Name)
	if err != nil {
		s.markFailed(ctx, uow, document, err)
		msg.Ack() // extraction failures do not become retriable; the file itself is bad
		return
	}

	if text == "" {
		text = fmt.Sprintf("[文件 %s 已上传，文本提取结果为空]", document.Name)
	}

	if err := uow.Begin(ctx); err != nil {
		s.log.Error("indexer", "Failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	content := &entity.DocumentContent{
		Id:         uuid.New(),
		DocumentId: document.Id,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := uow.DocumentContentRepository().Upsert(ctx, content); err != nil {
		s.log.Error("indexer", "Failed to save extracted text", map[string]interface{}{"document_id": document.Id, "error": err.Error()})
		msg.Nack()
		return
	}

	document.Status = entity.DocumentStatusSynced
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		s.log.Error("indexer", "Failed to mark document synced", map[string]interface{}{"document_id": document.Id, "error": err.Error()})
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		s.log.Error("indexer", "Failed to commit transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	s.textStore.Invalidate(document.Id)

	if s.eventPublisher != nil {
		event := events.NewDocumentSyncedEvent(document.Id, document.KnowledgeBaseId)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// The document is already synced locally; losing the event only
			// delays cache invalidation elsewhere.
			s.log.Warn("indexer", "Failed to publish synced event", map[string]interface{}{"document_id": document.Id, "error": err.Error()})
		}
	}

	s.log.Info("indexer", "Document synced", map[string]interface{}{"document_id": document.Id, "text_len": len(text)})
	msg.Ack()
}

func (s *indexerService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document, cause error) {
	s.log.Error("indexer", "Text extraction failed", map[string]interface{}{"document_id": document.Id, "error": cause.Error()})

	document.Status = entity.DocumentStatusFailed
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		s.log.Error("indexer", "Failed to mark document failed", map[string]interface{}{"document_id": document.Id, "error": err.Error()})
		return
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.NewDocumentIndexFailedEvent(document.Id, cause.Error()))
	}
}
