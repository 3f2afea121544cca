package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/directory-service/internal/api/http"
	"github.com/spec-kit/directory-service/internal/api/http/handlers"
	"github.com/spec-kit/directory-service/internal/cache"
	"github.com/spec-kit/directory-service/internal/config"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/identity"
	"github.com/spec-kit/directory-service/internal/observability"
	"github.com/spec-kit/directory-service/internal/persistence"
	"github.com/spec-kit/directory-service/internal/repository"
	"github.com/spec-kit/directory-service/internal/service"
	"github.com/spec-kit/directory-service/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	businessRepo := repository.NewBusinessRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	jobRepo := repository.NewJobRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	businessCache := cache.NewBusinessCache(redis.Client, cfg.Identity.CacheTTL(), logger)

	authService := service.NewAuthService(*cfg, accountRepo)
	aggregateService := service.NewAggregateService(businessRepo, reviewRepo, businessCache, dispatcher, metrics, logger)
	businessService := service.NewBusinessService(businessRepo, businessCache, dispatcher)
	reviewService := service.NewReviewService(reviewRepo, businessRepo, aggregateService, dispatcher)
	announcementService := service.NewAnnouncementService(announcementRepo, businessRepo)
	jobService := service.NewJobService(jobRepo, businessRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	identityMiddleware := identity.NewMiddleware(authService.TokenManager())

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	pages := handlers.PageDefaults{Default: cfg.Identity.DefaultPageSize, Max: cfg.Identity.MaxPageSize}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService),
		Businesses:    handlers.NewBusinessesHandler(businessService, pages),
		Reviews:       handlers.NewReviewsHandler(reviewService, pages),
		Announcements: handlers.NewAnnouncementsHandler(announcementService, pages),
		Jobs:          handlers.NewJobsHandler(jobService, pages),
		Identity:      identityMiddleware,
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
