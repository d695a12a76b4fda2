// Package container wires the application with Uber FX.
package container

import (
	"context"

	authapp "github.com/culinamind/backend/internal/application/auth"
	chatapp "github.com/culinamind/backend/internal/application/chat"
	recipeapp "github.com/culinamind/backend/internal/application/recipe"
	"github.com/culinamind/backend/internal/contextstore"
	"github.com/culinamind/backend/internal/dynamic"
	"github.com/culinamind/backend/internal/infrastructure/ai/anthropic"
	"github.com/culinamind/backend/internal/infrastructure/ai/openai"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/infrastructure/email"
	httpserver "github.com/culinamind/backend/internal/infrastructure/http"
	"github.com/culinamind/backend/internal/infrastructure/http/handlers"
	"github.com/culinamind/backend/internal/infrastructure/http/middleware"
	"github.com/culinamind/backend/internal/infrastructure/monitoring"
	gormrepo "github.com/culinamind/backend/internal/infrastructure/persistence/gorm"
	"github.com/culinamind/backend/internal/infrastructure/persistence/memory"
	redisrepo "github.com/culinamind/backend/internal/infrastructure/persistence/redis"
	"github.com/culinamind/backend/internal/infrastructure/security"
	"github.com/culinamind/backend/internal/infrastructure/vectorstore"
	"github.com/culinamind/backend/internal/ports/inbound"
	"github.com/culinamind/backend/internal/ports/outbound"
	"github.com/culinamind/backend/internal/prompt"
	"github.com/culinamind/backend/internal/rag"
	"github.com/culinamind/backend/internal/validation"
	"github.com/culinamind/backend/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module provides the full application graph.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	PersistenceModule,
	AIModule,
	ContextModule,
	KnowledgeModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration.
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging.
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// PersistenceModule provides the relational store, cache, and OTP store.
// Redis degrades to in-memory implementations when unreachable.
var PersistenceModule = fx.Provide(
	gormrepo.Open,
	gormrepo.NewUserRepository,
	gormrepo.NewFavoriteRepository,
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, outbound.OTPStore) {
		client, err := redisrepo.NewClient(cfg, log)
		if err != nil {
			log.Warn("redis unavailable, using in-memory cache and otp store", zap.Error(err))
			return memory.NewCacheRepository(), memory.NewOTPStore()
		}
		return redisrepo.NewCacheRepository(client, log), redisrepo.NewOTPStore(client, log)
	},
)

// AIModule provides the hosted model clients.
var AIModule = fx.Provide(
	func(cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) outbound.AIService {
		return openai.NewClient(cfg.AI, metrics, log)
	},
	func(cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) *anthropic.Client {
		return anthropic.NewClient(cfg.AI, metrics, log)
	},
	func(ai *anthropic.Client, log *zap.Logger) *validation.Validator {
		return validation.NewValidator(ai, log)
	},
)

// ContextModule provides the context store, its sweeper, and the prompt
// pipeline.
var ContextModule = fx.Provide(
	func(cfg *config.Config, cache outbound.CacheRepository, log *zap.Logger) (*contextstore.Store, error) {
		return contextstore.NewStore(cfg.Context, cache, log)
	},
	func(store *contextstore.Store) outbound.ContextStore {
		return store
	},
	func(cfg *config.Config, store outbound.ContextStore, log *zap.Logger) *contextstore.Sweeper {
		return contextstore.NewSweeper(cfg.Context, store, log)
	},
	func(store outbound.ContextStore, log *zap.Logger) *prompt.Engineer {
		return prompt.NewEngineer(store, log)
	},
	func(cfg *config.Config, store outbound.ContextStore, log *zap.Logger) *prompt.Optimizer {
		return prompt.NewOptimizer(cfg.Context, store, log)
	},
)

// KnowledgeModule provides the vector index, the RAG service, and the
// dynamic knowledge refresh pipeline.
var KnowledgeModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.VectorIndex, error) {
		return vectorstore.NewStore(cfg.Knowledge.IndexPath, vectorstore.DefaultDims, log)
	},
	func(
		ai outbound.AIService,
		index outbound.VectorIndex,
		store outbound.ContextStore,
		engineer *prompt.Engineer,
		optimizer *prompt.Optimizer,
		cfg *config.Config,
		log *zap.Logger,
	) *rag.Service {
		return rag.NewService(ai, index, store, engineer, optimizer, cfg.AI, cfg.Knowledge, log)
	},
	func(cfg *config.Config, log *zap.Logger) (*dynamic.Store, error) {
		return dynamic.NewStore(cfg.Knowledge.DynamicStoragePath, log)
	},
	func(cfg *config.Config, store *dynamic.Store, ragService *rag.Service, log *zap.Logger) *dynamic.Refresher {
		sources := []outbound.KnowledgeSource{
			dynamic.NewTrendingSource(),
			dynamic.NewSeasonalSource(),
			dynamic.NewMealDBClient(log),
		}
		labels := []string{"trending", "seasonal", "themealdb"}
		return dynamic.NewRefresher(sources, labels, store, ragService, cfg.Knowledge.RefreshInterval, log)
	},
)

// ServiceModule provides the application services.
var ServiceModule = fx.Provide(
	security.NewTokenService,
	func(cfg *config.Config) config.AuthConfig { return cfg.Auth },
	func(cfg *config.Config, log *zap.Logger) outbound.GoogleVerifier {
		return security.NewGoogleVerifier(cfg.Auth, log)
	},
	func(cfg *config.Config, log *zap.Logger) outbound.EmailService {
		return email.NewSMTPService(cfg.Email, log)
	},
	authapp.NewService,
	func(ai outbound.AIService, favorites outbound.FavoriteRepository, cfg *config.Config, log *zap.Logger) inbound.RecipeService {
		return recipeapp.NewService(ai, favorites, cfg.AI, log)
	},
	func(ragService *rag.Service, store outbound.ContextStore, cfg *config.Config, log *zap.Logger) inbound.ChatService {
		return chatapp.NewService(ragService, store, cfg.Context, log)
	},
)

// HTTPModule provides the middleware chain, handlers, and server.
var HTTPModule = fx.Provide(
	middleware.New,
	middleware.NewAuthenticator,
	security.NewRequestValidator,
	monitoring.NewMetricsCollector,
	handlers.NewAuthHandler,
	handlers.NewRecipeHandler,
	handlers.NewChatHandler,
	handlers.NewValidationHandler,
	httpserver.NewServer,
)

// LifecycleModule starts and stops the long-running components.
var LifecycleModule = fx.Invoke(RegisterLifecycleHooks)

// RegisterLifecycleHooks ties the server, the background sweeper, the
// knowledge refresher, and initial indexing to the FX lifecycle.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *httpserver.Server,
	ragService *rag.Service,
	sweeper *contextstore.Sweeper,
	refresher *dynamic.Refresher,
	index outbound.VectorIndex,
	dynStore *dynamic.Store,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			ragService.EnsureIndexed(ctx)
			sweeper.Start()
			refresher.Start()

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("server shutdown failed", zap.Error(err))
			}
			refresher.Stop()
			sweeper.Stop()

			if err := index.Close(); err != nil {
				log.Error("vector index close failed", zap.Error(err))
			}
			if err := dynStore.Close(); err != nil {
				log.Error("dynamic store close failed", zap.Error(err))
			}
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("database close failed", zap.Error(err))
				}
			}
			_ = log.Sync()
			return nil
		},
	})
}
