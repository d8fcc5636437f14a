package bootstrap

import (
	"log"
	"time"

	"ai-presentation-coach-be/internal/analysis"
	"ai-presentation-coach-be/internal/config"
	"ai-presentation-coach-be/internal/constant"
	"ai-presentation-coach-be/internal/controller"
	"ai-presentation-coach-be/internal/handler"
	"ai-presentation-coach-be/internal/pkg/logger"
	"ai-presentation-coach-be/internal/service"
	"ai-presentation-coach-be/internal/store"
	"ai-presentation-coach-be/internal/websocket"
	"ai-presentation-coach-be/pkg/llm/factory"

	pktNats "ai-presentation-coach-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	StreamHandler *handler.StreamHandler
	StreamGateway *websocket.Gateway
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
		cfg.Keys.XAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Transcription is optional: with no provider configured the stream still
	// works for clients that supply transcripts over the text path.
	var transcriber analysis.Transcriber
	if cfg.Ai.TranscriberProvider == "openai" && cfg.Keys.OpenAI != "" {
		transcriber = analysis.NewWhisperTranscriber(cfg.Keys.OpenAI, cfg.Audio.SampleRate)
		log.Printf("[INFO] Using Transcriber: OPENAI WHISPER")
	} else {
		log.Printf("[WARN] No transcriber configured; audio chunks without transcripts will fail")
	}

	// In-Memory Session Storage
	sessionStore := store.NewSessionStore()

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Lifecycle events from every instance are audited into the main log.
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else if err := natsSub.Subscribe(pktNats.SubjectWildcard, "coach-lifecycle-audit", service.NewLifecycleEventHandler(sysLogger)); err != nil {
		log.Printf("[WARN] Failed to subscribe to lifecycle events: %v", err)
	}

	// 3. Services
	analyzerService := service.NewAnalyzerService(
		sessionStore,
		transcriber,
		analysis.NewLocalDeliveryAnalyzer(cfg.Audio.SampleRate),
		analysis.NewLLMContentAnalyzer(llmProvider),
		analysis.NewLLMQuestionGenerator(llmProvider),
		analysis.NewLLMSuggestionGenerator(llmProvider),
		pubSub,
		sysLogger,
		time.Duration(cfg.Ai.StageTimeoutSeconds)*time.Second,
	)
	sessionService := service.NewSessionService(sessionStore, natsPub, sysLogger)

	// WebSocket Gateway
	wsLogger := logger.NewIsolatedLogger(cfg.App.StreamLogFilePath)
	wsGateway := websocket.NewGateway(sessionStore, analyzerService, cfg.ChunkThresholdBytes(), wsLogger)
	go wsGateway.Run()

	consumerService := service.NewConsumerService(pubSub, constant.TopicChunkAnalyzed, wsGateway, sysLogger)

	streamHandler := handler.NewStreamHandler(wsGateway, wsLogger)

	return &Container{
		SessionController: controller.NewSessionController(sessionService, analyzerService),
		ConsumerService:   consumerService,
		StreamHandler:     streamHandler,
		StreamGateway:     wsGateway,
	}
}
