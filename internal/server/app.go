package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/iudanet/carewatch/internal/config"
	"github.com/iudanet/carewatch/internal/crypto"
	"github.com/iudanet/carewatch/internal/server/auth"
	"github.com/iudanet/carewatch/internal/server/identity"
	"github.com/iudanet/carewatch/internal/server/jwt"
	"github.com/iudanet/carewatch/internal/server/middleware"
	"github.com/iudanet/carewatch/internal/server/storage"
)

// tokenCleanupInterval как часто удаляются истекшие refresh токены
const tokenCleanupInterval = time.Hour

// App HTTP сервер вместе с фоновыми задачами
type App struct {
	logger  *slog.Logger
	server  *http.Server
	auth    *auth.Service
	limiter *middleware.RateLimiter
	cfg     *config.Config
}

// NewApp собирает приложение поверх открытого хранилища
func NewApp(cfg *config.Config, logger *slog.Logger, store storage.Storage, version string) (*App, error) {
	codec, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}

	authService, err := auth.NewService(logger, store, store,
		crypto.NewPasswordHasher(crypto.DefaultParams()), codec)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.AuthRequests > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow,
			middleware.WithTrustedProxies(cfg.RateLimit.TrustedProxies))
	}

	router := NewRouter(RouterDeps{
		Logger:        logger,
		Storage:       store,
		Authenticator: authService,
		Resolver:      identity.NewResolver(codec),
		AuthLimiter:   limiter,
		Version:       version,
	})

	return &App{
		logger:  logger,
		auth:    authService,
		limiter: limiter,
		cfg:     cfg,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}, nil
}

// Run запускает сервер и блокируется до отмены ctx, затем корректно завершает работу
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.cleanupLoop(ctx)
	}()

	errC := make(chan error, 1)
	go func() {
		a.logger.InfoContext(ctx, "HTTP server listening", slog.String("addr", a.cfg.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errC:
		if err != nil {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	a.logger.Info("shutting down HTTP server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to shutdown http server: %w", err))
	}

	if a.limiter != nil {
		a.limiter.Stop()
	}
	wg.Wait()

	return runErr
}

// cleanupLoop периодически удаляет истекшие refresh токены
func (a *App) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := a.auth.CleanupExpiredTokens(ctx)
			if err != nil {
				a.logger.WarnContext(ctx, "failed to cleanup expired tokens", slog.Any("error", err))
				continue
			}
			if deleted > 0 {
				a.logger.InfoContext(ctx, "expired refresh tokens removed", slog.Int("count", deleted))
			}
		}
	}
}
