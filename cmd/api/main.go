package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/queueaway/queueaway/internal/adapters/database"
	"github.com/queueaway/queueaway/internal/adapters/events"
	"github.com/queueaway/queueaway/internal/adapters/notifications"
	"github.com/queueaway/queueaway/internal/adapters/random"
	"github.com/queueaway/queueaway/internal/adapters/storage"
	"github.com/queueaway/queueaway/internal/adapters/store"
	"github.com/queueaway/queueaway/internal/api/handlers"
	"github.com/queueaway/queueaway/internal/api/routes"
	"github.com/queueaway/queueaway/internal/application/services"
	"github.com/queueaway/queueaway/internal/domain/providers"
	"github.com/queueaway/queueaway/internal/domain/repositories"
	"github.com/queueaway/queueaway/internal/infrastructure/clients/postgres"
	"github.com/queueaway/queueaway/internal/infrastructure/clients/redis"
	"github.com/queueaway/queueaway/internal/infrastructure/observability"
	"github.com/queueaway/queueaway/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize Redis client; the service degrades to a pure in-memory
	// session without it (no durability, no streaming).
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, running without persistence and streaming")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized")
	}

	var storageProvider providers.StorageProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		storageProvider = storage.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}

	// Initialize PostgreSQL for the notification journal; optional.
	var journal repositories.NotificationJournal
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Warn().Err(err).Msg("PostgreSQL unavailable, notification history disabled")
	} else {
		defer pgClient.Close()
		journal = database.NewNotificationJournalAdapter(pgClient)
		logger.Info().Msg("PostgreSQL client initialized")
	}

	// Notification channels: the in-app channel needs the event bus,
	// the push channel needs a configured webhook.
	var notifiers []providers.Notifier
	if eventBus != nil {
		notifiers = append(notifiers, notifications.NewInAppNotifier(eventBus))
	}
	pushNotifier, err := notifications.NewPushNotifier(&cfg.Notifications)
	if err != nil {
		logger.Warn().Err(err).Msg("push channel disabled")
	} else {
		notifiers = append(notifiers, pushNotifier)
	}

	// Initialize core services
	rng := random.NewLockedSource(time.Now().UnixNano())
	repo := store.NewMemoryQueueRepository()
	gateway := services.NewPersistenceGateway(repo, storageProvider)
	simulator := services.NewPositionSimulator(rng)
	dispatcher := services.NewNotificationDispatcher(notifiers, journal, metrics)
	scheduler := services.NewTrackingScheduler(repo, simulator, gateway, dispatcher, eventBus, metrics, cfg.Tracking.TickInterval)
	queueService := services.NewQueueService(
		repo,
		gateway,
		scheduler,
		simulator,
		services.NewIDGenerator(rng),
		eventBus,
		cfg.Tracking.CreateDelay,
		cfg.Tracking.JoinDelay,
	)
	assistantService := services.NewAssistantService(queueService, rng)

	// Restore the previous session and resume tracking
	loaded := gateway.LoadAll(ctx)
	if loaded > 0 {
		logger.Info().Int("records", loaded).Msg("restored queue records")
	}
	if err := scheduler.TrackAll(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to resume tracking")
	}

	// Initialize handlers
	queueHandler := handlers.NewQueueHandler(queueService)
	assistantHandler := handlers.NewAssistantHandler(assistantService)
	notificationHandler := handlers.NewNotificationHandler(journal)
	streamHandler := handlers.NewStreamHandler(eventBus)

	// Set up router
	router := routes.NewRouter(
		queueHandler,
		assistantHandler,
		notificationHandler,
		streamHandler,
		cfg.Server.AllowedOrigins,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server. WriteTimeout is 0 because the SSE streams are
	// long-lived responses.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	// Stop the tick loops and take a final snapshot
	scheduler.Stop()
	gateway.SaveAll(shutdownCtx)

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing event bus")
		}
	}

	logger.Info().Msg("server stopped")
}
