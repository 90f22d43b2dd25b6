package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"real-estate-marketplace/internal/adapters/backend_client"
	logger_adapter "real-estate-marketplace/internal/adapters/logger"
	"real-estate-marketplace/internal/adapters/memory"
	postgres_adapter "real-estate-marketplace/internal/adapters/postgres"
	rabbitmq_adapter "real-estate-marketplace/internal/adapters/rabbitmq"
	"real-estate-marketplace/internal/adapters/redis_cache"
	"real-estate-marketplace/internal/adapters/rest"
	"real-estate-marketplace/internal/configs"
	"real-estate-marketplace/internal/constants"
	"real-estate-marketplace/internal/core/favorites"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/usecase"
	fluentlogger "real-estate-marketplace/pkg/fluent_logger"
	"real-estate-marketplace/pkg/postgres"
	"real-estate-marketplace/pkg/rabbitmq/rabbitmq_common"
	"real-estate-marketplace/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	cache     *redis_cache.Cache
	amqpConn  *rabbitmq_common.ConnectionManager
	producer  *rabbitmq_producer.Publisher
	apiServer *rest.Server

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// --- 3. ИНФРАСТРУКТУРА ---
	backendCfg := backend_client.Config{
		BaseURL:  appConfig.Backend.URL,
		Timeout:  appConfig.Backend.Timeout,
		CacheTTL: appConfig.Redis.CacheTTL,
	}
	if appConfig.Redis.Addr != "" {
		cache, err := redis_cache.Connect(ctx, redis_cache.Config{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
		})
		if err != nil {
			appLogger.Error("Failed to connect to Redis", err, nil)
			application.closeResources()
			return nil, err
		}
		application.cache = cache
		backendCfg.Cache = cache
		appLogger.Info("Reference data cache enabled", port.Fields{"redis_addr": appConfig.Redis.Addr})
	} else {
		appLogger.Warn("REDIS_ADDR is not set, reference data will not be cached", nil)
	}
	backend := backend_client.NewClient(backendCfg)

	var favoritesRepo port.FavoritesRepositoryPort
	if appConfig.Database.URL != "" {
		dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		application.dbPool = dbPool
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		if err := postgres.EnsureSchema(ctx, dbPool, postgres_adapter.FavoritesSchema...); err != nil {
			appLogger.Error("Failed to apply favorites schema", err, nil)
			application.closeResources()
			return nil, err
		}
		repo, err := postgres_adapter.NewPostgresFavoritesRepository(dbPool)
		if err != nil {
			appLogger.Error("Failed to create postgres favorites repository", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
		}
		favoritesRepo = repo
	} else {
		appLogger.Warn("DATABASE_URL is not set, favorites are kept in memory", nil)
		favoritesRepo = memory.NewFavoritesRepository()
	}

	var favoritesPublisher port.FavoritesEventPublisherPort
	if appConfig.RabbitMQ.URL != "" {
		bridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
		connManager, err := rabbitmq_common.NewManager(appConfig.RabbitMQ.URL, bridge)
		if err != nil {
			appLogger.Error("Failed to connect to RabbitMQ", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		application.amqpConn = connManager

		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.MarketplaceExchange,
			ExchangeType:             "direct",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   bridge,
		}, connManager)
		if err != nil {
			appLogger.Error("Failed to create RabbitMQ producer", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create RabbitMQ producer: %w", err)
		}
		application.producer = producer

		eventsPublisher, err := rabbitmq_adapter.NewFavoritesEventsPublisher(producer, constants.FavoritesChangedRouteKey)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		favoritesPublisher = eventsPublisher
	} else {
		appLogger.Warn("RABBITMQ_URL is not set, favorites events stay in-process", nil)
	}
	appLogger.Info("All persistence and service adapters initialized.", nil)

	// --- 4. USE CASES ---
	favoritesStore := favorites.NewStore(favoritesRepo, favoritesPublisher)

	handlers := rest.Handlers{
		Listings: rest.NewListingsHandler(
			usecase.NewSearchListingsUseCase(backend, backend),
			usecase.NewGetFilterOptionsUseCase(backend, backend),
			usecase.NewGetListingUseCase(backend),
			usecase.NewSaveListingUseCase(backend, backend, backend, backend),
		),
		Properties: rest.NewPropertiesHandler(
			usecase.NewGetPropertySchemaUseCase(backend),
			usecase.NewGetPropertyGroupsUseCase(backend),
			usecase.NewValidateListingFormUseCase(backend),
		),
		Reference: rest.NewReferenceHandler(
			usecase.NewGetLocationsUseCase(backend),
			usecase.NewGetTaxonomyUseCase(backend),
		),
		Favorites: rest.NewFavoritesHandler(
			usecase.NewToggleFavoriteUseCase(favoritesStore),
			usecase.NewGetFavoriteIDsUseCase(favoritesStore),
			usecase.NewGetFavoriteListingsUseCase(favoritesStore, backend),
			usecase.NewClearFavoritesUseCase(favoritesStore),
			favoritesStore,
		),
		Sessions: rest.NewSessionHandler(backend, backend, appConfig.Rest.CorsAllowedOrigins),
	}

	// --- 5. REST API ---
	application.apiServer = rest.NewServer(appConfig.Rest.PORT, handlers, appConfig.Rest.CorsAllowedOrigins, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := a.apiServer.Stop(ctx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
			cancel()
		}

		a.closeResources()
		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		return err
	}
}

// closeResources закрывает внешние подключения; fluent закрывается последним в Run.
func (a *App) closeResources() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ producer", err, nil)
		}
		a.producer = nil
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		a.amqpConn = nil
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
		a.cache = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
		a.dbPool = nil
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
