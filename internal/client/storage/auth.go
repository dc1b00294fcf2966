package storage

import (
	"context"
	"time"
)

// AuthStorage хранилище сессии клиента.
// Хранится одна сессия: последний выполненный login.
type AuthStorage interface {
	// SaveAuth сохраняет сессию, заменяя предыдущую
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth возвращает сохраненную сессию.
	// Возвращает ErrAuthNotFound если login не выполнялся
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth удаляет сессию (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated проверяет, что сессия есть и access token не истек
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData сессия пользователя на клиенте
type AuthData struct {
	Username     string `json:"username"`
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix секунды истечения access token
}

// IsExpired сообщает, истек ли access token к моменту now.
// leeway позволяет обновить токен заранее, до отказа сервера.
func (a *AuthData) IsExpired(now time.Time, leeway time.Duration) bool {
	return now.Add(leeway).Unix() >= a.ExpiresAt
}
