// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	aiapp "github.com/kookt/v1/internal/application/ai"
	ingredientapp "github.com/kookt/v1/internal/application/ingredient"
	recipeapp "github.com/kookt/v1/internal/application/recipe"
	shoppingapp "github.com/kookt/v1/internal/application/shopping"
	userapp "github.com/kookt/v1/internal/application/user"
	"github.com/kookt/v1/internal/infrastructure/ai/openai"
	"github.com/kookt/v1/internal/infrastructure/config"
	"github.com/kookt/v1/internal/infrastructure/http/handlers"
	"github.com/kookt/v1/internal/infrastructure/http/server"
	"github.com/kookt/v1/internal/infrastructure/storage"
	"github.com/kookt/v1/internal/ports/inbound"
	"github.com/kookt/v1/internal/ports/outbound"
	"github.com/kookt/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StorageModule,
	AIModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			Development: cfg.App.Debug,
		})
	},
)

// StorageModule provides the key-value store and the typed store on top
var StorageModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.KeyValueStore, error) {
		switch cfg.Storage.Backend {
		case "redis":
			return storage.NewRedisStore(&cfg.Storage.Redis, log)
		case "memory":
			log.Info("Using in-memory key-value store")
			return storage.NewMemoryStore(), nil
		default:
			return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
		}
	},
	storage.NewStore,
)

// AIModule provides the model client
var AIModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) *openai.Client {
			return openai.NewClient(&cfg.AI, log)
		},
		fx.As(new(outbound.AIClient)),
	),
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		aiapp.NewService,
		fx.As(new(inbound.GenerationService)),
	),
	fx.Annotate(
		recipeapp.NewService,
		fx.As(new(inbound.RecipeService)),
	),
	fx.Annotate(
		shoppingapp.NewService,
		fx.As(new(inbound.ShoppingService)),
	),
	fx.Annotate(
		ingredientapp.NewService,
		fx.As(new(inbound.IngredientService)),
	),
	fx.Annotate(
		userapp.NewService,
		fx.As(new(inbound.UserService)),
	),
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	func(
		generation inbound.GenerationService,
		recipes inbound.RecipeService,
		shopping inbound.ShoppingService,
		ingredients inbound.IngredientService,
		users inbound.UserService,
		store *storage.Store,
		log *zap.Logger,
	) *handlers.APIHandlers {
		return handlers.NewAPIHandlers(generation, recipes, shopping, ingredients, users, store, log)
	},
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	kv outbound.KeyValueStore,
	recipes inbound.RecipeService,
	shopping inbound.ShoppingService,
	ingredients inbound.IngredientService,
	users inbound.UserService,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Kookt application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			// Warm the in-memory state from persistence before serving
			if err := recipes.Load(ctx); err != nil {
				return fmt.Errorf("failed to load recipes: %w", err)
			}
			if err := shopping.Load(ctx); err != nil {
				return fmt.Errorf("failed to load shopping list: %w", err)
			}
			if err := ingredients.Load(ctx); err != nil {
				return fmt.Errorf("failed to load pantry: %w", err)
			}
			if err := users.Load(ctx); err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Kookt application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if closer, ok := kv.(interface{ Close() error }); ok {
				if err := closer.Close(); err != nil {
					log.Error("Failed to close key-value store", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
