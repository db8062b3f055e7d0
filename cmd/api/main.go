package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrqz-remodeling/console-api/docs"
	"github.com/mrqz-remodeling/console-api/internal/auth"
	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/mrqz-remodeling/console-api/internal/database"
	"github.com/mrqz-remodeling/console-api/internal/document"
	"github.com/mrqz-remodeling/console-api/internal/http/handler"
	"github.com/mrqz-remodeling/console-api/internal/http/middleware"
	"github.com/mrqz-remodeling/console-api/internal/http/router"
	"github.com/mrqz-remodeling/console-api/internal/jobs"
	"github.com/mrqz-remodeling/console-api/internal/logger"
	"github.com/mrqz-remodeling/console-api/internal/mailer"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"github.com/mrqz-remodeling/console-api/internal/service"
	"github.com/mrqz-remodeling/console-api/internal/storage"
	"go.uber.org/zap"
)

// @title MRQZ Console API
// @version 1.0
// @description Quotations, payments and reporting for the MRQZ Remodeling console.

// @contact.name MRQZ Remodeling
// @contact.url https://www.mrqzremodeling.com

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token from the identity provider

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Basic configuration first, for logging setup
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// Secrets come from the environment locally and from Key Vault when configured
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema migrated")
	}

	docStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	sessionStore, err := auth.NewSessionStore(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	auth.Init(sessionStore)
	defer func() {
		if err := auth.Teardown(); err != nil {
			log.Warn("Error closing session store", zap.Error(err))
		}
	}()

	mail := mailer.New(&cfg.Mail, log)
	if !mail.Enabled() {
		log.Info("Mail delivery not configured, quotations cannot be sent by email")
	}

	// Repositories
	baseRepo := repository.NewBaseRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Services
	catalogService := service.NewCatalogService(baseRepo, serviceRepo, log)
	propertyService := service.NewPropertyService(propertyRepo, unitRepo, log)
	projectService := service.NewProjectService(projectRepo, baseRepo, serviceRepo, propertyRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, projectRepo, log)
	dashboardService := service.NewDashboardService(projectRepo, log)
	documentService := service.NewDocumentService(
		projectRepo,
		document.NewChromeRenderer(&cfg.Document, log),
		docStorage,
		mail,
		document.LetterheadFromConfig(&cfg.Document),
		log,
	)

	// Middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		handler.NewCatalogHandler(catalogService, log),
		handler.NewPropertyHandler(propertyService, log),
		handler.NewProjectHandler(projectService, log),
		handler.NewPaymentHandler(paymentService, log),
		handler.NewDocumentHandler(documentService, projectService, log),
		handler.NewDashboardHandler(dashboardService, log),
		handler.NewAuthHandler(log),
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterReconcileJob(
			scheduler,
			paymentService,
			log,
			cfg.Jobs.ReconcileCron,
			5*time.Minute,
		); err != nil {
			log.Error("Failed to register payment reconcile job", zap.Error(err))
		}

		if err := jobs.RegisterSessionPurgeJob(
			scheduler,
			auth.PurgeExpired,
			log,
			cfg.Jobs.SessionPurgeCron,
			30*time.Second,
		); err != nil {
			log.Error("Failed to register session purge job", zap.Error(err))
		}

		scheduler.Start()
		log.Info("Scheduler started", zap.Strings("jobs", scheduler.JobNames()))
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			stopped := scheduler.Stop()
			<-stopped.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
