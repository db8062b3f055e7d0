package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mrqz-remodeling/console-api/internal/auth"
	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/mrqz-remodeling/console-api/internal/database"
	"github.com/mrqz-remodeling/console-api/internal/http/handler"
	"github.com/mrqz-remodeling/console-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/mrqz-remodeling/console-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	catalogHandler   *handler.CatalogHandler
	propertyHandler  *handler.PropertyHandler
	projectHandler   *handler.ProjectHandler
	paymentHandler   *handler.PaymentHandler
	documentHandler  *handler.DocumentHandler
	dashboardHandler *handler.DashboardHandler
	authHandler      *handler.AuthHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	catalogHandler *handler.CatalogHandler,
	propertyHandler *handler.PropertyHandler,
	projectHandler *handler.ProjectHandler,
	paymentHandler *handler.PaymentHandler,
	documentHandler *handler.DocumentHandler,
	dashboardHandler *handler.DashboardHandler,
	authHandler *handler.AuthHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		catalogHandler:   catalogHandler,
		propertyHandler:  propertyHandler,
		projectHandler:   projectHandler,
		paymentHandler:   paymentHandler,
		documentHandler:  documentHandler,
		dashboardHandler: dashboardHandler,
		authHandler:      authHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
			r.Use(chimw.Timeout(timeout))
		}

		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(middleware.CaptureSession)
			r.Use(rt.rateLimiter.LimitBySession)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)
			r.Post("/auth/logout", rt.authHandler.Logout)

			// Catalog
			r.Route("/bases", func(r chi.Router) {
				r.Get("/", rt.catalogHandler.ListBases)
				r.Post("/", rt.catalogHandler.CreateBase)
				r.Get("/{id}", rt.catalogHandler.GetBase)
				r.Put("/{id}", rt.catalogHandler.UpdateBase)
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", rt.catalogHandler.ListServices)
				r.Post("/", rt.catalogHandler.CreateService)
				r.Get("/{id}", rt.catalogHandler.GetService)
				r.Put("/{id}", rt.catalogHandler.UpdateService)
			})

			r.Route("/properties", func(r chi.Router) {
				r.Get("/", rt.propertyHandler.List)
				r.Post("/", rt.propertyHandler.Create)
				r.Get("/{id}", rt.propertyHandler.GetByID)
				r.Put("/{id}", rt.propertyHandler.Update)
				r.Get("/{id}/units", rt.propertyHandler.ListUnits)
				r.Post("/{id}/units", rt.propertyHandler.CreateUnit)
				r.Put("/{id}/units/{unitId}", rt.propertyHandler.UpdateUnit)
			})

			// Quotations
			r.Post("/quotations/preview", rt.projectHandler.Preview)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.Post("/", rt.projectHandler.Create)
				r.Get("/drafts", rt.projectHandler.ListDrafts)
				r.Get("/export.xlsx", rt.documentHandler.Export)
				r.Get("/{id}", rt.projectHandler.GetByID)
				r.Put("/{id}/status", rt.projectHandler.UpdateStatus)
				r.Put("/{id}/change-orders", rt.projectHandler.UpdateChangeOrders)

				// Draft item editing
				r.Post("/{id}/items", rt.projectHandler.AddItem)
				r.Put("/{id}/items/{itemId}", rt.projectHandler.AssignItem)
				r.Delete("/{id}/items/{itemId}", rt.projectHandler.RemoveItem)

				r.Get("/{id}/balance", rt.paymentHandler.Balance)
				r.Get("/{id}/pdf", rt.documentHandler.PDF)
				r.Post("/{id}/send", rt.documentHandler.Send)
			})

			// Payments are append-only
			r.Route("/payments", func(r chi.Router) {
				r.Get("/", rt.paymentHandler.List)
				r.Post("/", rt.paymentHandler.Record)
			})

			r.Get("/dashboard", rt.dashboardHandler.Get)
		})
	})

	return r
}

func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	writeHealth(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

// readiness checks every dependency the API needs to serve requests
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]interface{})
	healthy := true

	if err := database.HealthCheck(rt.db); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		checks["database"] = map[string]interface{}{"status": "healthy"}
	}

	if err := auth.Ping(r.Context()); err != nil {
		rt.logger.Error("Session store health check failed", zap.Error(err))
		checks["sessionStore"] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		checks["sessionStore"] = map[string]interface{}{"status": "healthy"}
	}

	status, label := http.StatusOK, "healthy"
	if !healthy {
		status, label = http.StatusServiceUnavailable, "unhealthy"
	}
	writeHealth(w, status, map[string]interface{}{
		"status": label,
		"checks": checks,
	})
}

func writeHealth(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
