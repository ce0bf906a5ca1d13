package bootstrap

import (
	"context"
	"log"
	"time"

	"admission-assistant-be/internal/config"
	"admission-assistant-be/internal/controller"
	"admission-assistant-be/internal/handler"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/internal/pkg/mailer"
	"admission-assistant-be/internal/repository/memory"
	"admission-assistant-be/internal/repository/unitofwork"
	"admission-assistant-be/internal/service"
	"admission-assistant-be/internal/websocket"
	"admission-assistant-be/pkg/embedding"
	"admission-assistant-be/pkg/kyc"
	"admission-assistant-be/pkg/llm/factory"
	pktNats "admission-assistant-be/pkg/nats"
	"admission-assistant-be/pkg/rag/intent"
	"admission-assistant-be/pkg/rag/media"
	"admission-assistant-be/pkg/rag/response"
	"admission-assistant-be/pkg/rag/retriever"
	"admission-assistant-be/pkg/retry"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController

	// Background services (main.go runs these)
	ConsumerService service.IConsumerService

	// WebSockets & notifications
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		// Model-invoking stages answer with a service-unavailable message
		// until the credentials are fixed; the rest of the API stays up.
		log.Printf("[WARN] LLM Provider unavailable: %v", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	retryPolicy := retry.Policy{
		Retries:       cfg.Ai.RetryMaxAttempts,
		BaseDelay:     time.Duration(cfg.Ai.RetryBaseDelaySecs) * time.Second,
		MaxDelay:      time.Duration(cfg.Ai.RetryMaxDelaySecs) * time.Second,
		BackoffFactor: retry.DefaultPolicy.BackoffFactor,
	}

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Pipeline stages
	decider := media.NewDecider(llmProvider, retryPolicy, sysLogger)
	searcher := media.NewSearcher(uowFactory, sysLogger)
	selector := media.NewSelector(llmProvider, retryPolicy, sysLogger)
	passageRetriever := retriever.NewRetriever(uowFactory, embeddingProvider, sysLogger)
	generator := response.NewGenerator(llmProvider, retryPolicy, cfg.Chat.MaxResponseTokens, sysLogger)

	// 6. Services
	authService := service.NewAuthService(uowFactory, natsPub, cfg.Auth, sysLogger)

	intentClassifier := intent.NewClassifier(llmProvider, retryPolicy)
	kycExtractor := kyc.NewExtractor(llmProvider, retryPolicy, sysLogger)
	kycStore := memory.NewKycProfileRepository()
	kycManager := kyc.NewManager(
		intentClassifier,
		kycExtractor,
		kycStore,
		authService,
		llmProvider,
		retryPolicy,
		sysLogger,
	)

	chatService := service.NewChatService(
		uowFactory,
		decider,
		searcher,
		selector,
		passageRetriever,
		generator,
		kycManager,
		natsPub,
		cfg.Chat,
		sysLogger,
	)

	publisherService := service.NewPublisherService(cfg.Chat.IngestTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Chat.IngestTopicName,
		uowFactory,
		embeddingProvider,
		natsPub,
		sysLogger,
	)
	knowledgeService := service.NewKnowledgeService(uowFactory, publisherService, sysLogger)

	notifService := service.NewNotificationService(natsSub, emailService, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 7. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		ChatController:      controller.NewChatController(chatService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
