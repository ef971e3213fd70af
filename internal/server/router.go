// Package server собирает HTTP API сервера синхронизации сохранений.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/internal/server/handlers"
	"github.com/iudanet/savesync/internal/server/middleware"
	"github.com/iudanet/savesync/pkg/api"
)

// HealthPath не попадает в access log
const HealthPath = "/api/v1/health"

// RouterConfig - зависимости HTTP роутера
type RouterConfig struct {
	Logger   *slog.Logger
	Replicas handlers.Replicas
	DB       handlers.Pinger
	// PushLimiter ограничивает POST /records; nil - без ограничения
	PushLimiter *middleware.RateLimiter
	Version     string
}

// NewRouter creates the chi router with all API routes
func NewRouter(cfg RouterConfig) *chi.Mux {
	sync := handlers.NewSyncHandler(cfg.Logger, cfg.Replicas)
	health := handlers.NewHealthHandler(cfg.Logger, cfg.DB, cfg.Version)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.LoggingWithSkip(cfg.Logger, []string{HealthPath}))
	r.Use(middleware.RecoveryMiddleware(cfg.Logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeRouteError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeRouteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get(HealthPath, health.Health)

	r.Route("/api/v1/namespaces", func(r chi.Router) {
		r.Get("/", sync.Namespaces)

		r.Route("/{namespace}", func(r chi.Router) {
			r.Get("/records", sync.Pull)
			r.Get("/conflicts", sync.Conflicts)

			if cfg.PushLimiter != nil {
				r.With(middleware.RateLimitMiddleware(cfg.PushLimiter)).Post("/records", sync.Push)
			} else {
				r.Post("/records", sync.Push)
			}
		})
	})

	return r
}

func writeRouteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Code: string(errs.CodeInvalidRequest), Message: message})
}
