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

	httptransport "github.com/attendx/hrms-service/internal/api/http"
	"github.com/attendx/hrms-service/internal/api/http/handlers"
	"github.com/attendx/hrms-service/internal/auth"
	"github.com/attendx/hrms-service/internal/config"
	"github.com/attendx/hrms-service/internal/events"
	"github.com/attendx/hrms-service/internal/observability"
	"github.com/attendx/hrms-service/internal/persistence"
	"github.com/attendx/hrms-service/internal/repository"
	"github.com/attendx/hrms-service/internal/service"
	"github.com/attendx/hrms-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	officeRepo := repository.NewOfficeRepository(pool)

	if err := persistence.SeedDepartments(ctx, departmentRepo, cfg.Seed.Departments, logger); err != nil {
		logger.Fatal("failed to seed departments", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var sink events.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		sink = events.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, logger)
		logger.Info("audit events forwarded to kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.AuditTopic))
	}
	auditService := service.NewAuditService(dispatcher, sink, logger)
	defer auditService.Close() //nolint:errcheck
	worker.StartAuditWorker(auditService)

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	throttle := persistence.NewLoginAttempts(redis.Cmdable(), cfg.Auth.LoginMaxAttempts,
		time.Duration(cfg.Auth.LoginWindowMinutes)*time.Minute, logger)

	authService := service.NewAuthService(service.AuthDependencies{
		AccountRepo: accountRepo,
		Tokens:      tokens,
		Hasher:      hasher,
		Throttle:    throttle,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	accountService := service.NewAccountService(service.AccountDependencies{
		AccountRepo:    accountRepo,
		DepartmentRepo: departmentRepo,
		OfficeRepo:     officeRepo,
		Hasher:         hasher,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Logger:         logger,
	})
	orgService := service.NewOrgService(service.OrgDependencies{
		DepartmentRepo: departmentRepo,
		OfficeRepo:     officeRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	validator := handlers.NewValidator()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:        handlers.NewAuthHandler(authService, validator),
		Users:       handlers.NewUsersHandler(accountService, validator),
		Departments: handlers.NewDepartmentsHandler(orgService, validator),
		Offices:     handlers.NewOfficesHandler(orgService, validator),
		Resolver:    auth.NewResolver(tokens, accountRepo),
		Metrics:     metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
