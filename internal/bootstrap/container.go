package bootstrap

import (
	"context"
	"log"

	"kb-assistant-be/internal/config"
	"kb-assistant-be/internal/controller"
	"kb-assistant-be/internal/pkg/logger"
	"kb-assistant-be/internal/repository/unitofwork"
	"kb-assistant-be/internal/service"
	"kb-assistant-be/pkg/events"
	"kb-assistant-be/pkg/llm/zhipu"
	pktNats "kb-assistant-be/pkg/nats"
	"kb-assistant-be/pkg/textstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	KnowledgeController controller.IKnowledgeController
	ChatController      controller.IChatController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	textStore := textstore.NewStore(&documentContentSource{uowFactory: uowFactory})

	// Other instances re-index documents too; drop stale cached text when
	// their synced events arrive.
	if natsSub != nil {
		err := natsSub.Subscribe("events."+events.EventDocumentSynced, "", func(ctx context.Context, event events.Event) error {
			raw, _ := event.Payload()["document_id"].(string)
			documentId, err := uuid.Parse(raw)
			if err != nil {
				return nil // malformed event, nothing to invalidate
			}
			textStore.Invalidate(documentId)
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to document events: %v", err)
		}
	}

	// 3. Providers
	llmProvider := zhipu.NewZhipuProvider(cfg.Ai.ZhipuBaseURL, cfg.Ai.ZhipuAPIKey, cfg.Ai.Model)
	log.Printf("[INFO] Using LLM Provider: ZHIPU (%s)", cfg.Ai.Model)

	// 4. Services
	indexerLogger := logger.NewIsolatedLogger("logs/indexer.log")
	publisherService := service.NewPublisherService(cfg.Keys.IndexTopic, pubSub)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.Keys.IndexTopic,
		uowFactory,
		textStore,
		natsPub,
		indexerLogger,
	)

	authService := service.NewAuthService(uowFactory)
	knowledgeService := service.NewKnowledgeService(uowFactory, publisherService, textStore)
	chatService := service.NewChatService(
		uowFactory,
		llmProvider,
		textStore,
		cfg.Ai.ContextBudget,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService, cfg.App.UploadDir),
		ChatController:      controller.NewChatController(chatService),

		IndexerService: indexerService,
		Logger:         sysLogger,
	}
}
