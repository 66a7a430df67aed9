package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/fr76/bankledger/internal/adapter/http/handler"
	"github.com/fr76/bankledger/internal/adapter/http/middleware"
	"github.com/fr76/bankledger/internal/infrastructure/auth"
	"github.com/fr76/bankledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	LedgerHandler      *handler.LedgerHandler
	TransactionHandler *handler.TransactionHandler
	AdminHandler       *handler.AdminHandler
	HealthHandler      *handler.HealthHandler

	// JWTManager is nil when authentication is disabled; every request
	// then runs as a local administrator.
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.Auth(cfg.JWTManager))
		} else {
			r.Use(middleware.StaticAdmin)
		}

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Post("/{id}/deposit", cfg.LedgerHandler.Deposit)
			r.Post("/{id}/withdraw", cfg.LedgerHandler.Withdraw)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/accounts", cfg.AdminHandler.ListAccounts)
			r.Get("/accounts/deactivated", cfg.AdminHandler.ListDeactivatedAccounts)
			r.Post("/accounts/{id}/deactivate", cfg.AdminHandler.Deactivate)
			r.Post("/accounts/{id}/reactivate", cfg.AdminHandler.Reactivate)
		})
	})

	return r
}
