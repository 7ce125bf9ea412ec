package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/property-registry/internal/api/http"
	"github.com/spec-kit/property-registry/internal/api/http/handlers"
	"github.com/spec-kit/property-registry/internal/config"
	"github.com/spec-kit/property-registry/internal/events"
	"github.com/spec-kit/property-registry/internal/identity"
	"github.com/spec-kit/property-registry/internal/ledger"
	"github.com/spec-kit/property-registry/internal/observability"
	"github.com/spec-kit/property-registry/internal/service"
	"github.com/spec-kit/property-registry/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, pingers, closeStore, err := buildLedger(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init ledger backend", zap.Error(err))
	}
	defer closeStore()

	dispatcher := events.NewInMemoryDispatcher()

	userService := service.NewUserService(service.UserDependencies{
		Ledger:     store,
		Dispatcher: dispatcher,
	})
	propertyService := service.NewPropertyService(service.PropertyDependencies{
		Ledger:     store,
		Dispatcher: dispatcher,
	})
	enrollmentService := service.NewEnrollmentService(cfg.Identity)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	identityMiddleware := identity.NewMiddleware(enrollmentService.TokenManager())

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pingers),
		Enrollment: handlers.NewEnrollmentHandler(enrollmentService),
		Users:      handlers.NewUsersHandler(userService),
		Properties: handlers.NewPropertiesHandler(propertyService),
		Identity:   identityMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildLedger selects and initializes the configured ledger backend.
func buildLedger(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ledger.Ledger, map[string]handlers.Pinger, func(), error) {
	switch cfg.Ledger.Backend {
	case config.LedgerBackendRedis:
		store := ledger.NewRedis(cfg.Redis, logger)
		return store, map[string]handlers.Pinger{"redis": store}, store.Close, nil
	case config.LedgerBackendPostgres:
		store, err := ledger.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Ledger.Bootstrap {
			if err := store.EnsureSchema(ctx, logger); err != nil {
				store.Close()
				return nil, nil, nil, err
			}
		}
		return store, map[string]handlers.Pinger{"postgres": store}, store.Close, nil
	default:
		logger.Warn("using in-memory ledger; records will not survive a restart")
		return ledger.NewMemory(), map[string]handlers.Pinger{}, func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
