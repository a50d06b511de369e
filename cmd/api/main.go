package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/crm-api/internal/api/http"
	"github.com/spec-kit/crm-api/internal/api/http/handlers"
	"github.com/spec-kit/crm-api/internal/auth"
	"github.com/spec-kit/crm-api/internal/config"
	"github.com/spec-kit/crm-api/internal/domain"
	"github.com/spec-kit/crm-api/internal/events"
	"github.com/spec-kit/crm-api/internal/observability"
	"github.com/spec-kit/crm-api/internal/persistence"
	"github.com/spec-kit/crm-api/internal/store"
	"github.com/spec-kit/crm-api/internal/worker"
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

	var redis *persistence.Redis
	tokenTable, err := cfg.Auth.TokenTable()
	if err != nil {
		logger.Fatal("failed to parse token table", zap.Error(err))
	}
	if cfg.Auth.TokenSource == config.TokenSourceRedis {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()

		tokenTable, err = redis.LoadTokenTable(ctx, cfg.Auth.RedisKey)
		if err != nil {
			logger.Fatal("failed to load token table from redis", zap.Error(err))
		}
	}

	tokens := make(map[string]domain.Role, len(tokenTable))
	for token, role := range tokenTable {
		tokens[token] = domain.Role(role)
	}
	logger.Info("credential table loaded", zap.Int("tokens", len(tokens)))

	resolver := auth.NewRoleResolver(tokens)
	pipeline := auth.NewMiddleware(resolver)

	entityStore := store.New()
	if err := seed(entityStore); err != nil {
		logger.Fatal("failed to seed store", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotifier(dispatcher, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Customers: handlers.NewCustomersHandler(entityStore),
		Tickets:   handlers.NewTicketsHandler(entityStore, dispatcher),
		Notes:     handlers.NewNotesHandler(entityStore, dispatcher),
		Pipeline:  pipeline,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// seed pre-loads demo customers so smoke tests can skip customer creation.
func seed(entityStore *store.Store) error {
	if _, err := entityStore.CreateCustomer("Jane Doe", "jane@example.com"); err != nil {
		return err
	}
	if _, err := entityStore.CreateCustomer("John Smith", "john@example.com"); err != nil {
		return err
	}
	return nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
