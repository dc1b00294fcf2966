// Package auth управляет сессией клиента: login, обновление токенов, logout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/carewatch/internal/client/api"
	"github.com/iudanet/carewatch/internal/client/storage"
	"github.com/iudanet/carewatch/internal/validation"
	pkgapi "github.com/iudanet/carewatch/pkg/api"
)

// refreshLeeway обновляем access token заранее, чтобы он не истек в пути
const refreshLeeway = 30 * time.Second

var (
	// ErrNotAuthenticated сессии нет, нужен login
	ErrNotAuthenticated = errors.New("not authenticated, run 'carewatch login' first")
	// ErrSessionExpired сервер отклонил refresh token, сессия удалена
	ErrSessionExpired = errors.New("session expired, run 'carewatch login' again")
)

// APIClient методы сервера, нужные для управления сессией
type APIClient interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

// Service предоставляет функции авторизации
type Service struct {
	apiClient APIClient
	store     storage.AuthStorage
	logger    *slog.Logger
	now       func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(apiClient APIClient, store storage.AuthStorage, logger *slog.Logger) *Service {
	return &Service{
		apiClient: apiClient,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// Register регистрирует нового пользователя и возвращает его ID.
// Сессия не создается, после регистрации нужен Login.
func (s *Service) Register(ctx context.Context, username, password, confirmPassword string) (string, error) {
	reg := validation.Registration{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}
	if err := reg.Validate(); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirmPassword,
	})
	if err != nil {
		return "", fmt.Errorf("registration failed: %w", err)
	}

	return resp.UserID, nil
}

// Login выполняет аутентификацию и сохраняет сессию
func (s *Service) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	creds := validation.Login{Username: username, Password: password}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	authData := s.authData(resp, &storage.AuthData{Username: username})
	if err := s.store.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	return authData, nil
}

// Current возвращает сохраненную сессию без обращения к серверу
func (s *Service) Current(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	return authData, nil
}

// AccessToken возвращает действующий access token.
// Истекший токен обновляется через refresh token, новая пара сохраняется.
func (s *Service) AccessToken(ctx context.Context) (string, error) {
	authData, err := s.Current(ctx)
	if err != nil {
		return "", err
	}

	if !authData.IsExpired(s.now(), refreshLeeway) {
		return authData.AccessToken, nil
	}

	refreshed, err := s.refresh(ctx, authData)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

// Logout отзывает refresh токены на сервере и удаляет локальную сессию.
// Локальная сессия удаляется даже если сервер недоступен.
func (s *Service) Logout(ctx context.Context) error {
	if _, err := s.Current(ctx); err != nil {
		return err
	}

	token, err := s.AccessToken(ctx)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "skipping server logout", slog.Any("error", err))
	default:
		if err := s.apiClient.Logout(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "failed to logout on server", slog.Any("error", err))
		}
	}

	// Сессия могла быть удалена при неудачном refresh
	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}

	return nil
}

func (s *Service) refresh(ctx context.Context, current *storage.AuthData) (*storage.AuthData, error) {
	resp, err := s.apiClient.Refresh(ctx, current.RefreshToken)
	if err != nil {
		if api.IsUnauthorized(err) {
			if delErr := s.store.DeleteAuth(ctx); delErr != nil && !errors.Is(delErr, storage.ErrAuthNotFound) {
				s.logger.WarnContext(ctx, "failed to delete stale session", slog.Any("error", delErr))
			}
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	authData := s.authData(resp, current)
	if err := s.store.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	s.logger.DebugContext(ctx, "access token refreshed", slog.String("username", authData.Username))
	return authData, nil
}

// authData собирает сессию из ответа сервера, недостающие поля берет из prev
func (s *Service) authData(resp *pkgapi.TokenResponse, prev *storage.AuthData) *storage.AuthData {
	authData := &storage.AuthData{
		Username:     resp.Username,
		UserID:       resp.UserID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    s.now().Unix() + resp.ExpiresIn,
	}
	if authData.Username == "" {
		authData.Username = prev.Username
	}
	if authData.UserID == "" {
		authData.UserID = prev.UserID
	}
	return authData
}
