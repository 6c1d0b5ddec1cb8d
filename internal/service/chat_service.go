package service

import (
	"context"
	"errors"
	"time"

	"kb-assistant-be/internal/constant"
	"kb-assistant-be/internal/dto"
	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/pkg/logger"
	"kb-assistant-be/internal/repository/specification"
	"kb-assistant-be/internal/repository/unitofwork"
	"kb-assistant-be/pkg/llm"
	"kb-assistant-be/pkg/prompt"
	"kb-assistant-be/pkg/retrieval"
	"kb-assistant-be/pkg/stream"
	"kb-assistant-be/pkg/textstore"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("chat session not found")

type IChatService interface {
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionResponse, error)
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.ChatSessionDetailResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
	VerifySession(ctx context.Context, userId, sessionId uuid.UUID) error
	SendMessage(ctx context.Context, userId, sessionId uuid.UUID, content string, sink stream.Sink) error
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	llmProvider   llm.LLMProvider
	textStore     *textstore.Store
	assembler     *retrieval.Assembler
	contextBudget int
	log           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	textStore *textstore.Store,
	contextBudget int,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		llmProvider:   llmProvider,
		textStore:     textStore,
		assembler:     retrieval.NewAssembler(retrieval.KeywordScorer{}),
		contextBudget: contextBudget,
		log:           log,
	}
}

func (s *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		count, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatSessionID{ChatSessionID: session.Id})
		if err != nil {
			return nil, err
		}

		updatedAt := session.CreatedAt
		if session.UpdatedAt != nil {
			updatedAt = *session.UpdatedAt
		}

		responses = append(responses, dto.ChatSessionResponse{
			Id:           session.Id,
			Title:        session.Title,
			MessageCount: int(count),
			UpdatedAt:    updatedAt.Format("15:04"),
		})
	}
	return responses, nil
}

func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.DefaultChatTitle,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	greeting := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       constant.ChatWelcomeMessage,
		CreatedLabel:  time.Now().Format("15:04"),
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, greeting); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id, Title: session.Title}, nil
}

func (s *chatService) GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.ChatSessionDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	messageDTOs := make([]dto.ChatMessageDTO, 0, len(messages))
	for _, msg := range messages {
		messageDTOs = append(messageDTOs, toChatMessageDTO(msg))
	}

	return &dto.ChatSessionDetailResponse{
		Id:       session.Id,
		Title:    session.Title,
		Messages: messageDTOs,
	}, nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteAllBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *chatService) VerifySession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := s.findOwnedSession(ctx, uow, userId, sessionId)
	return err
}

// SendMessage runs one full chat turn: persist the user message, retrieve
// knowledge context, stream the model reply through the sink, and persist the
// assistant message before the terminal event is sent.
func (s *chatService) SendMessage(ctx context.Context, userId, sessionId uuid.UUID, content string, sink stream.Sink) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}

	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleUser,
		Content:       content,
		CreatedLabel:  time.Now().Format("15:04"),
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return err
	}

	if session.Title == constant.DefaultChatTitle {
		session.Title = sessionTitle(content)
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return err
		}
	}

	kbs, refs, err := s.loadKnowledgeBases(ctx, uow)
	if err != nil {
		return err
	}

	bundle := s.assembler.Assemble(content, kbs, s.contextBudget)
	systemPrompt := prompt.NewBuilder(bundle.Text).Build()

	history, err := s.loadHistory(ctx, uow, sessionId, userMessage.Id)
	if err != nil {
		return err
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: content})

	upstream := func(ctx context.Context, onDelta func(string)) (string, error) {
		return s.llmProvider.ChatStream(ctx, messages, onDelta)
	}

	finalize := func(replyContent string, source *retrieval.Attribution) (string, error) {
		assistantMessage := &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: sessionId,
			Role:          constant.ChatMessageRoleAssistant,
			Content:       replyContent,
			CreatedLabel:  time.Now().Format("15:04"),
			CreatedAt:     time.Now(),
		}
		if source != nil {
			assistantMessage.SourceName = source.Name
			assistantMessage.SourceUpdatedAt = source.UpdatedAt
		}
		if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
			return "", err
		}
		return assistantMessage.Id.String(), nil
	}

	relay := stream.NewRelay(refs, bundle.Source)
	if err := relay.Run(ctx, upstream, sink, finalize); err != nil {
		s.log.Error("chat", "Chat turn failed", map[string]interface{}{"session_id": sessionId, "error": err.Error()})
		return err
	}

	return nil
}

func (s *chatService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// loadKnowledgeBases materializes every knowledge base with the extracted
// text of its synced documents, plus the name refs used for source marker
// resolution.
func (s *chatService) loadKnowledgeBases(ctx context.Context, uow unitofwork.UnitOfWork) ([]retrieval.KnowledgeBase, []stream.KnowledgeBaseRef, error) {
	entities, err := uow.KnowledgeBaseRepository().FindAll(ctx,
		specification.WithDocuments{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, nil, err
	}

	kbs := make([]retrieval.KnowledgeBase, 0, len(entities))
	refs := make([]stream.KnowledgeBaseRef, 0, len(entities))
	for _, kb := range entities {
		documents := make([]retrieval.Document, 0, len(kb.Documents))
		for i := range kb.Documents {
			doc := &kb.Documents[i]
			synced := doc.Status == entity.DocumentStatusSynced
			text := ""
			if synced {
				text = s.textStore.Text(ctx, doc.Id)
			}
			documents = append(documents, retrieval.Document{
				ID:            doc.Id.String(),
				Name:          doc.Name,
				UploadedLabel: doc.UploadedLabel,
				Synced:        synced,
				Text:          text,
			})
		}

		kbs = append(kbs, retrieval.KnowledgeBase{
			Name:         kb.Name,
			Description:  kb.Description,
			UpdatedLabel: kb.UpdatedLabel,
			Documents:    documents,
		})
		refs = append(refs, stream.KnowledgeBaseRef{
			Name:         kb.Name,
			UpdatedLabel: kb.UpdatedLabel,
		})
	}
	return kbs, refs, nil
}

// loadHistory returns the conversation window preceding the just-persisted
// user message, oldest first.
func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId, currentMessageId uuid.UUID) ([]llm.Message, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, constant.ChatHistoryWindow)
	for _, msg := range messages {
		if msg.Id == currentMessageId {
			continue
		}
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	if len(history) > constant.ChatHistoryWindow {
		history = history[len(history)-constant.ChatHistoryWindow:]
	}
	return history, nil
}

func sessionTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= constant.ChatTitleMaxRunes {
		return firstMessage
	}
	return string(runes[:constant.ChatTitleMaxRunes]) + "…"
}

func toChatMessageDTO(msg *entity.ChatMessage) dto.ChatMessageDTO {
	var source *retrieval.Attribution
	if msg.SourceName != "" {
		source = &retrieval.Attribution{
			Name:      msg.SourceName,
			UpdatedAt: msg.SourceUpdatedAt,
		}
	}
	return dto.ChatMessageDTO{
		Id:        msg.Id,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedLabel,
		Source:    source,
	}
}
