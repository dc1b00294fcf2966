package models

import "time"

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time  `json:"created_at"`           // время создания
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последнего входа
	ID           string     `json:"id"`                   // UUID пользователя
	Username     string     `json:"username"`             // уникальный username
	PasswordHash string     `json:"-"`                    // argon2id хеш пароля, никогда не сериализуется
}

// RefreshToken представляет refresh token пользователя.
// Сам токен хранится только у клиента, сервер хранит SHA256 хеш.
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
	TokenHash string    `json:"-"`          // SHA256 хеш токена
	UserID    string    `json:"user_id"`    // ID пользователя
}

// IsExpired проверяет, истек ли токен на момент now
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
