package bootstrap

import (
	"context"
	"fmt"

	"learnpath-be/internal/config"
	"learnpath-be/internal/constant"
	"learnpath-be/internal/controller"
	"learnpath-be/internal/pkg/logger"
	"learnpath-be/internal/repository/unitofwork"
	"learnpath-be/internal/service"
	"learnpath-be/pkg/assessment"
	"learnpath-be/pkg/cache"
	"learnpath-be/pkg/llm"
	"learnpath-be/pkg/llm/factory"
	"learnpath-be/pkg/metrics"
	pktNats "learnpath-be/pkg/nats"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	PathController controller.IPathController
	AiController   controller.IAiController
	ChatController controller.IChatController

	Registry *prometheus.Registry
	Logger   logger.ILogger

	closers []func()
}

// NewContainer wires services against db. The provider comes from cfg unless
// one is passed in.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger, provider llm.ContentProvider) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	registry, err := metrics.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("metrics registry: %w", err)
	}

	c := &Container{Registry: registry, Logger: sysLogger}

	// 2. Content provider
	if provider == nil {
		provider, err = factory.NewContentProvider(factory.Config{
			Provider: cfg.Ai.LLMProvider,
			Model:    cfg.Ai.LLMModel,
			BaseURL:  cfg.ProviderBaseURL(),
			APIKey:   cfg.ProviderAPIKey(),
			Timeout:  cfg.Ai.Timeout,

			Temperature: cfg.Ai.Temperature,
			MaxTokens:   cfg.Ai.MaxTokens,
		}, metrics.ObserveProviderCall)
		if err != nil {
			return nil, fmt.Errorf("content provider: %w", err)
		}
		sysLogger.Info("BOOTSTRAP", "content provider ready", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"model":    cfg.Ai.LLMModel,
		})
	}

	evaluator, err := assessment.New(cfg.Ai.AssessmentEvaluator, provider, constant.EvaluationPrompt)
	if err != nil {
		return nil, err
	}

	// 3. Infrastructure
	var store cache.Store = cache.NewMemoryStore(cfg.Cache.TTL)
	if cfg.Cache.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(cfg.Cache.RedisURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "redis unavailable, using in-process cache", map[string]interface{}{"error": err.Error()})
		} else {
			store = redisStore
			c.closers = append(c.closers, func() { _ = redisStore.Close() })
		}
	}

	var publisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(context.Background(), cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "nats unavailable, domain events disabled", map[string]interface{}{"error": err.Error()})
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 4. Services
	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret)
	pathService := service.NewPathService(uowFactory, provider, store, cfg.Cache.TTL, publisher, sysLogger)
	assessmentService := service.NewAssessmentService(uowFactory, provider, evaluator, cfg.Ai.AssessmentEvaluator, publisher, sysLogger)
	chatService := service.NewChatService(uowFactory, provider, publisher, sysLogger)
	studyAidService := service.NewStudyAidService(uowFactory, provider)

	// 5. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.PathController = controller.NewPathController(pathService, assessmentService)
	c.AiController = controller.NewAiController(pathService, assessmentService, studyAidService)
	c.ChatController = controller.NewChatController(chatService)

	return c, nil
}

// Close releases connections opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
