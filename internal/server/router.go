// Package server собирает HTTP сервер: маршруты, middleware и фоновые задачи.
package server

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/carewatch/internal/server/handlers"
	"github.com/iudanet/carewatch/internal/server/middleware"
	"github.com/iudanet/carewatch/internal/server/storage"
)

// RouterDeps зависимости маршрутизатора
type RouterDeps struct {
	Logger        *slog.Logger
	Storage       storage.Storage
	Authenticator handlers.Authenticator
	Resolver      middleware.PrincipalResolver
	// AuthLimiter ограничивает /auth/login и /auth/register, nil отключает лимит
	AuthLimiter *middleware.RateLimiter
	Version     string
}

// NewRouter регистрирует маршруты и оборачивает их в middleware.
// Порядок: recovery -> logging -> (rate limit | auth) -> handler.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := handlers.NewAuthHandler(deps.Logger, deps.Authenticator)
	readingHandler := handlers.NewReadingHandler(deps.Logger, deps.Storage)
	healthHandler := handlers.NewHealthHandler(deps.Logger, deps.Storage, deps.Version)

	protect := middleware.Authenticate(deps.Logger, deps.Resolver)
	limit := func(h http.Handler) http.Handler { return h }
	if deps.AuthLimiter != nil {
		limit = middleware.RateLimit(deps.AuthLimiter, deps.Logger)
	}

	mux := http.NewServeMux()

	// Публичные маршруты
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("POST /auth/register", limit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /auth/login", limit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /auth/refresh", authHandler.Refresh)

	// Защищенные маршруты
	mux.Handle("POST /auth/logout", protect(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /physiological/mock", protect(http.HandlerFunc(readingHandler.Mock)))
	mux.Handle("GET /physiological/list", protect(http.HandlerFunc(readingHandler.List)))
	mux.Handle("GET /physiological/get/list", protect(http.HandlerFunc(readingHandler.List)))
	mux.Handle("POST /physiological/add", protect(http.HandlerFunc(readingHandler.Add)))
	mux.Handle("POST /physiological/delete", protect(http.HandlerFunc(readingHandler.Delete)))

	return middleware.Recovery(deps.Logger)(middleware.Logging(deps.Logger, "/health")(mux))
}
