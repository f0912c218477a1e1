package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/aegis-security/site-service/internal/api/http"
	"github.com/aegis-security/site-service/internal/api/http/handlers"
	"github.com/aegis-security/site-service/internal/auth"
	"github.com/aegis-security/site-service/internal/config"
	"github.com/aegis-security/site-service/internal/events"
	"github.com/aegis-security/site-service/internal/observability"
	"github.com/aegis-security/site-service/internal/persistence"
	"github.com/aegis-security/site-service/internal/repository"
	"github.com/aegis-security/site-service/internal/service"
	"github.com/aegis-security/site-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	jobRepo := repository.NewJobRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	galleryRepo := repository.NewGalleryRepository(pool)
	contactRepo := repository.NewContactRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	verifier := auth.NewVerifier(cfg.Admin)
	codec := auth.NewTokenCodec(cfg.Session.Secret)
	sessions := auth.NewSessionManager(verifier, codec, cfg.Session, logger)
	gate := auth.NewRequestGate(sessions, dispatcher, logger)

	var galleryCache service.GalleryCache
	if handle := redis.ClientHandle(); handle != nil {
		galleryCache = handle
	}
	contentService := service.NewContentService(jobRepo, galleryRepo, galleryCache, logger)
	applicationService := service.NewApplicationService(jobRepo, applicationRepo, dispatcher)
	contactService := service.NewContactService(contactRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Session:      handlers.NewSessionHandler(sessions),
		Jobs:         handlers.NewJobsHandler(contentService),
		Applications: handlers.NewApplicationsHandler(applicationService),
		Gallery:      handlers.NewGalleryHandler(contentService),
		Contacts:     handlers.NewContactsHandler(contactService),
		AdminPages:   handlers.NewAdminPagesHandler(metrics),
		Gate:         gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
