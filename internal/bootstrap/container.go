// Package bootstrap wires repositories, services and controllers together.
package bootstrap

import (
	"log"

	"ai-notes-be/internal/config"
	"ai-notes-be/internal/controller"
	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/internal/repository/unitofwork"
	"ai-notes-be/internal/service"
	"ai-notes-be/pkg/llm"
	"ai-notes-be/pkg/llm/factory"

	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	AuthController controller.IAuthController
	NoteController controller.INoteController
	AIController   controller.IAIController
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Infrastructure
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// LLM provider is optional: without it the AI endpoints report an
	// upstream configuration error while the rest of the API keeps working.
	llmProvider := newLLMProvider(cfg, sysLogger)

	// Services
	authService := service.NewAuthService(uowFactory, cfg.JWT)
	noteService := service.NewNoteService(uowFactory)
	aiService := service.NewAIService(uowFactory, llmProvider)

	// Controllers
	return &Container{
		Logger:         sysLogger,
		AuthController: controller.NewAuthController(authService),
		NoteController: controller.NewNoteController(noteService),
		AIController:   controller.NewAIController(aiService),
	}
}

func newLLMProvider(cfg *config.Config, sysLogger logger.ILogger) llm.Provider {
	baseURL := cfg.Ai.APIURL
	if cfg.Ai.Provider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}

	provider, err := factory.NewLLMProvider(cfg.Ai.Provider, cfg.Ai.Model, baseURL, cfg.Ai.APIKey)
	if err != nil {
		sysLogger.Warn("bootstrap", "AI features disabled", map[string]interface{}{
			"provider": cfg.Ai.Provider,
			"error":    err.Error(),
		})
		log.Printf("Warning: AI features disabled: %v", err)
		return nil
	}
	return provider
}
