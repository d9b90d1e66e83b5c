// Package server собирает HTTP API сервера синхронизации.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/medsync/internal/server/handlers"
	"github.com/iudanet/medsync/internal/server/middleware"
	"github.com/iudanet/medsync/pkg/api"
)

// HealthPath не требует аутентификации и не логируется
const HealthPath = "/health"

// RouterDeps зависимости HTTP слоя
type RouterDeps struct {
	Logger  *slog.Logger
	Service handlers.SyncService
	DB      handlers.Pinger
	Limiter *middleware.RateLimiter // Limiter nil отключает ограничение частоты
	JWT     handlers.JWTConfig
	Version string
}

// NewRouter создает chi router со всеми маршрутами /api/v1
func NewRouter(deps RouterDeps) http.Handler {
	syncHandler := handlers.NewSyncHandler(deps.Logger, deps.Service)
	healthHandler := handlers.NewHealthHandler(deps.Logger, deps.DB, deps.Version)

	r := chi.NewRouter()

	// Порядок: request id нужен tracing и логам, recovery внутри, чтобы 500 попал в лог и span
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing)
	r.Use(middleware.LoggingWithSkip(deps.Logger, []string{HealthPath}))
	r.Use(middleware.RecoveryMiddleware(deps.Logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, deps.Logger, http.StatusNotFound, api.CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, deps.Logger, http.StatusMethodNotAllowed, api.CodeBadRequest, "method not allowed")
	})

	r.Get(HealthPath, healthHandler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get(HealthPath, healthHandler.Health)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(deps.Logger, deps.JWT))
			if deps.Limiter != nil {
				r.Use(deps.Limiter.Middleware(middleware.ByIdentity))
			}

			r.Route("/sync", func(r chi.Router) {
				r.Post("/pull", syncHandler.Pull)
				r.Post("/push", syncHandler.Push)
				r.Post("/bidirectional", syncHandler.Bidirectional)
				r.Get("/conflicts", syncHandler.Conflicts)
				r.Post("/conflicts/resolve", syncHandler.Resolve)
				r.Get("/history", syncHandler.History)
				r.Get("/stats", syncHandler.Stats)
				r.Get("/entities/{entityType}/{syncId}/history", syncHandler.EntityHistory)
			})
		})
	})

	return r
}
