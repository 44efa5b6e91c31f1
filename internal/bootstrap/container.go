package bootstrap

import (
	"log"
	"time"

	"coverletter-ai-be/internal/config"
	"coverletter-ai-be/internal/controller"
	"coverletter-ai-be/internal/pkg/logger"
	"coverletter-ai-be/internal/repository/unitofwork"
	"coverletter-ai-be/internal/service"
	"coverletter-ai-be/pkg/embedding"
	"coverletter-ai-be/pkg/llm/factory"
	"coverletter-ai-be/pkg/rag/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GenerateController  controller.IGenerateController
	KnowledgeController controller.IKnowledgeController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.New(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewCohereProvider(cfg.Keys.Cohere)
		log.Printf("[INFO] Using Embedding Provider: COHERE")
	}
	// Repeated generations for the same posting reuse the cached query vector.
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider, 5*time.Minute)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Keys.OpenRouter,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	orchestrator := search.NewOrchestrator(embeddingProvider, search.DefaultConfig(), sysLogger)

	knowledgeService := service.NewKnowledgeService(uowFactory, publisherService)
	generationService := service.NewGenerationService(uowFactory, orchestrator, llmProvider, sysLogger)

	// 5. Controllers
	return &Container{
		GenerateController:  controller.NewGenerateController(generationService, sysLogger),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),

		ConsumerService: consumerService,
	}
}
