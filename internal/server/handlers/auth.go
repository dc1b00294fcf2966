package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/carewatch/internal/server/auth"
	"github.com/iudanet/carewatch/internal/server/identity"
	"github.com/iudanet/carewatch/internal/server/middleware"
	"github.com/iudanet/carewatch/pkg/api"
)

// Authenticator сценарии аутентификации, которые нужны HTTP слою
type Authenticator interface {
	Register(ctx context.Context, username, password, confirmPassword string) (string, error)
	Login(ctx context.Context, username, password string) (*auth.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.Session, error)
	Logout(ctx context.Context, userID string) (int, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	responder
	auth Authenticator
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, authenticator Authenticator) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		auth:      authenticator,
	}
}

// Register обрабатывает POST /auth/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userID, err := h.auth.Register(ctx, req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		h.sendAuthError(ctx, w, err)
		return
	}

	resp := api.RegisterResponse{
		UserID:  userID,
		Message: "User registered successfully",
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// Login обрабатывает POST /auth/login
// Аутентификация пользователя по username и паролю
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.sendAuthError(ctx, w, err)
		return
	}

	h.sendJSON(w, tokenResponse(session), http.StatusOK)
}

// Refresh обрабатывает POST /auth/refresh
// Refresh token передается в заголовке Authorization: Bearer <token>
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refreshToken, ok := middleware.BearerToken(r)
	if !ok {
		h.sendAuthError(ctx, w, auth.ErrUnauthenticated)
		return
	}

	session, err := h.auth.Refresh(ctx, refreshToken)
	if err != nil {
		h.sendAuthError(ctx, w, err)
		return
	}

	h.sendJSON(w, tokenResponse(session), http.StatusOK)
}

// Logout обрабатывает POST /auth/logout
// Отзывает все refresh токены текущего пользователя
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := identity.MustFromContext(ctx)

	if _, err := h.auth.Logout(ctx, principal.UserID); err != nil {
		h.sendAuthError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sendAuthError переводит ошибки аутентификации в HTTP ответ
func (h *AuthHandler) sendAuthError(ctx context.Context, w http.ResponseWriter, err error) {
	var validationErr *auth.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.sendError(w, validationErr.Reason, http.StatusBadRequest)
	case errors.Is(err, auth.ErrDuplicateUsername):
		h.sendError(w, auth.ErrDuplicateUsername.Error(), http.StatusConflict)
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.sendError(w, auth.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, auth.ErrUnauthenticated):
		h.sendError(w, auth.ErrUnauthenticated.Error(), http.StatusUnauthorized)
	default:
		h.logger.ErrorContext(ctx, "auth request failed", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

func tokenResponse(s *auth.Session) api.TokenResponse {
	return api.TokenResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		UserID:       s.UserID,
		Username:     s.Username,
		ExpiresIn:    s.ExpiresIn,
	}
}
