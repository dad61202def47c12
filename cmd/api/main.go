package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/helpdesk-labs/incident-service/internal/api/http"
	"github.com/helpdesk-labs/incident-service/internal/api/http/handlers"
	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/classifier"
	"github.com/helpdesk-labs/incident-service/internal/config"
	"github.com/helpdesk-labs/incident-service/internal/events"
	"github.com/helpdesk-labs/incident-service/internal/faq"
	"github.com/helpdesk-labs/incident-service/internal/observability"
	"github.com/helpdesk-labs/incident-service/internal/persistence"
	"github.com/helpdesk-labs/incident-service/internal/repository"
	"github.com/helpdesk-labs/incident-service/internal/service"
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
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdministratorRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)
	incidentRepo := repository.NewIncidentRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:  userRepo,
		AdminRepo: adminRepo,
	})
	incidentService := service.NewIncidentService(service.IncidentDependencies{
		IncidentRepo: incidentRepo,
		StatusRepo:   statusRepo,
		CategoryRepo: categoryRepo,
		Dispatcher:   dispatcher,
	})
	auditService := service.NewAuditService(service.AuditDependencies{
		AuditRepo:    auditRepo,
		IncidentRepo: incidentRepo,
		Dispatcher:   dispatcher,
	})
	referenceService := service.NewReferenceService(
		categoryRepo, statusRepo,
		redis.ClientHandle(), cfg.Assistant.ReferenceTTL(), logger,
	)

	faqStore, err := faq.Load(cfg.Assistant.FAQPath, logger)
	if err != nil {
		logger.Fatal("failed to load faq store", zap.Error(err))
	}
	assistantService := service.NewAssistantService(referenceService, classifier.New(nil), faqStore)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Incidents:      handlers.NewIncidentsHandler(incidentService),
		Audit:          handlers.NewAuditHandler(auditService),
		Assistant:      handlers.NewAssistantHandler(assistantService),
		References:     handlers.NewReferencesHandler(referenceService),
		Principals:     handlers.NewPrincipalsHandler(userRepo, adminRepo),
		AuthMiddleware: authMiddleware,
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
