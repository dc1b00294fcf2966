// Package auth реализует регистрацию, вход, обновление и отзыв сессий.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/carewatch/internal/crypto"
	"github.com/iudanet/carewatch/internal/models"
	"github.com/iudanet/carewatch/internal/server/storage"
	"github.com/iudanet/carewatch/internal/validation"
)

// dummyPassword хешируется один раз при старте. Хеш используется при входе
// неизвестного пользователя, чтобы время ответа не выдавало существование логина.
const dummyPassword = "carewatch-dummy-password"

// PasswordHasher хеширует и проверяет пароли
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// TokenIssuer выпускает access и refresh токены
type TokenIssuer interface {
	Issue(userID, username string) (string, time.Time, error)
	GenerateRefreshToken() (string, time.Time, error)
	AccessTokenTTL() time.Duration
}

// Session результат успешного входа или обновления токенов
type Session struct {
	ExpiresAt    time.Time
	AccessToken  string
	RefreshToken string
	UserID       string
	Username     string
	ExpiresIn    int64
}

// Service реализует сценарии аутентификации
type Service struct {
	logger    *slog.Logger
	users     storage.UserStorage
	tokens    storage.TokenStorage
	hasher    PasswordHasher
	issuer    TokenIssuer
	now       func() time.Time
	dummyHash string
}

// NewService создает сервис аутентификации
func NewService(
	logger *slog.Logger,
	users storage.UserStorage,
	tokens storage.TokenStorage,
	hasher PasswordHasher,
	issuer TokenIssuer,
) (*Service, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Service{
		logger:    logger,
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		issuer:    issuer,
		now:       time.Now,
		dummyHash: dummyHash,
	}, nil
}

// Register создает нового пользователя и возвращает его ID
func (s *Service) Register(ctx context.Context, username, password, confirmPassword string) (string, error) {
	input := validation.Registration{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}
	if err := input.Validate(); err != nil {
		return "", &ValidationError{Reason: err.Error()}
	}

	// Предварительная проверка ради понятного ответа.
	// Окончательное решение принимает уникальный индекс при вставке.
	_, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return "", ErrDuplicateUsername
	case !errors.Is(err, storage.ErrUserNotFound):
		return "", fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return "", ErrDuplicateUsername
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	return user.ID, nil
}

// Login проверяет учетные данные и открывает новую сессию
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	input := validation.Login{Username: username, Password: password}
	if err := input.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.WarnContext(ctx, "login failed: wrong password", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	// Не критичная ошибка, логируем но не прерываем
	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.WarnContext(ctx, "failed to update last login",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	return session, nil
}

// Refresh обменивает refresh token на новую пару токенов.
// Старый refresh token удаляется, повторно использовать его нельзя.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, ErrUnauthenticated
	}

	tokenHash := crypto.HashToken(refreshToken)

	stored, err := s.tokens.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			s.logger.WarnContext(ctx, "refresh token not found")
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	// Удаляем до выпуска новой пары: из двух параллельных обменов выиграет один
	if err := s.tokens.DeleteRefreshToken(ctx, tokenHash); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to delete refresh token: %w", err)
	}

	if stored.IsExpired(s.now()) {
		s.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", stored.UserID))
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tokens refreshed", slog.String("user_id", user.ID))

	return session, nil
}

// Logout отзывает все refresh токены пользователя.
// Выданные access токены остаются действительными до истечения срока.
func (s *Service) Logout(ctx context.Context, userID string) (int, error) {
	deleted, err := s.tokens.DeleteUserTokens(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged out",
		slog.String("user_id", userID),
		slog.Int("tokens_deleted", deleted))

	return deleted, nil
}

// CleanupExpiredTokens удаляет истекшие refresh токены
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	deleted, err := s.tokens.DeleteExpiredTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return deleted, nil
}

func (s *Service) openSession(ctx context.Context, user *models.User) (*Session, error) {
	accessToken, expiresAt, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.issuer.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	token := &models.RefreshToken{
		TokenHash: crypto.HashToken(refreshToken),
		UserID:    user.ID,
		ExpiresAt: refreshExpiresAt,
		CreatedAt: s.now(),
	}
	if err := s.tokens.SaveRefreshToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		ExpiresIn:    int64(s.issuer.AccessTokenTTL().Seconds()),
		UserID:       user.ID,
		Username:     user.Username,
	}, nil
}
