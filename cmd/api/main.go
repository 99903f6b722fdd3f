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

	"github.com/spec-kit/sla-compliance-service/internal/api/http/handlers"
	"github.com/spec-kit/sla-compliance-service/internal/auth"
	"github.com/spec-kit/sla-compliance-service/internal/config"
	"github.com/spec-kit/sla-compliance-service/internal/events"
	"github.com/spec-kit/sla-compliance-service/internal/observability"
	"github.com/spec-kit/sla-compliance-service/internal/persistence"
	"github.com/spec-kit/sla-compliance-service/internal/repository"
	"github.com/spec-kit/sla-compliance-service/internal/service"
	"github.com/spec-kit/sla-compliance-service/internal/worker"

	apihttp "github.com/spec-kit/sla-compliance-service/internal/api/http"
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
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres init failed", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redisClient := persistence.NewRedis(cfg.Redis, logger)
	defer redisClient.Close()

	var batchRepo repository.BatchRepository
	var evalRepo repository.EvaluationRepository
	if pool := postgres.PoolHandle(); pool != nil {
		batchRepo = repository.NewBatchRepository(pool)
		evalRepo = repository.NewEvaluationRepository(pool)
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotifier(dispatcher, logger).RegisterHandlers()

	metrics := observability.NewMetrics()

	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		logger.Fatal("auth service init failed", zap.Error(err))
	}

	reportService, err := service.NewReportService(cfg.Rules, service.ReportDependencies{
		BatchRepo:      batchRepo,
		EvaluationRepo: evalRepo,
		Cache:          redisClient,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("report service init failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 32 * 1024 * 1024,
	})

	apihttp.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, postgres, redisClient),
		Auth:           handlers.NewAuthHandler(authService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	var reevaluation *worker.ReevaluationWorker
	if cfg.Worker.Enabled {
		reevaluation = worker.NewReevaluationWorker(reportService, cfg.Worker.CronSpec, logger)
		if err := reevaluation.Start(); err != nil {
			logger.Fatal("re-evaluation worker init failed", zap.Error(err))
		}
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	waitForShutdown(app, reevaluation, logger)
}

func waitForShutdown(app *fiber.App, reevaluation *worker.ReevaluationWorker, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if reevaluation != nil {
		reevaluation.Stop()
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
