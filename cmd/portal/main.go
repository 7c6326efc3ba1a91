package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/zerohunger/portal/internal/api/http"
	"github.com/zerohunger/portal/internal/api/http/handlers"
	"github.com/zerohunger/portal/internal/auth"
	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/config"
	"github.com/zerohunger/portal/internal/events"
	"github.com/zerohunger/portal/internal/media"
	"github.com/zerohunger/portal/internal/observability"
	"github.com/zerohunger/portal/internal/persistence"
	"github.com/zerohunger/portal/internal/repository"
	"github.com/zerohunger/portal/internal/service"
	"github.com/zerohunger/portal/internal/session"
	"github.com/zerohunger/portal/internal/web"
	"github.com/zerohunger/portal/internal/worker"
)

const sessionPurgeInterval = 15 * time.Minute

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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	store, purger, err := sessionStore(cfg, pg, redis)
	if err != nil {
		logger.Fatal("failed to build session store", zap.Error(err))
	}
	var signals session.SignalStore = session.NewMemorySignals()
	if redis.Enabled() {
		signals = repository.NewSignalCache(redis.Client)
	}
	logger.Info("session store selected", zap.String("store", cfg.Session.Store))

	sessions := session.NewManager(cfg.Session, session.ManagerDependencies{
		Store:  store,
		Expiry: auth.NewTokenInspector().ExpiresAt,
		Logger: logger,
	})
	sessions.RegisterHandlers(dispatcher)

	client := backend.NewClient(cfg.Backend, backend.ClientDependencies{
		Logger:     logger,
		Metrics:    metrics,
		Dispatcher: dispatcher,
	})
	updates := service.NewFoodUpdates(signals, dispatcher, logger)

	authService := service.NewAuthService(service.AuthDependencies{Backend: client, Sessions: sessions, Logger: logger})
	donorService := service.NewDonorService(service.DonorDependencies{Backend: client, Updates: updates, Logger: logger})
	volunteerService := service.NewVolunteerService(service.VolunteerDependencies{Backend: client, Updates: updates, Logger: logger})
	publicService := service.NewPublicService(client, logger)

	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger))
	worker.StartSessionPurger(ctx, purger, sessionPurgeInterval, logger)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		Views:     web.NewEngine(),
		BodyLimit: 2 * media.DefaultMaxBytes,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), sessions)

	donorHandler := handlers.NewDonorHandler(donorService, media.DefaultMaxBytes)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerService, media.DefaultMaxBytes)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Welcome:   handlers.NewWelcomeHandler(publicService),
		Auth:      handlers.NewAuthHandler(authService),
		Dashboard: handlers.NewDashboardHandler(donorHandler, volunteerHandler),
		Donor:     donorHandler,
		Volunteer: volunteerHandler,
		Sync:      handlers.NewSyncHandler(updates),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// sessionStore picks the configured backing store. The purger is nil unless
// sessions live in Postgres.
func sessionStore(cfg *config.Config, pg *persistence.Postgres, redis *persistence.Redis) (session.Store, worker.Purger, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		return repository.NewSessionCache(redis.Client), nil, nil
	case config.SessionStorePostgres:
		repo := repository.NewSessionRepository(pg.PoolHandle())
		return repo, repo, nil
	case config.SessionStoreCookie:
		store, err := session.NewCookieStore(cfg.Session.Secret)
		return store, nil, err
	default:
		return session.NewMemoryStore(), nil, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
