package auth

import "errors"

// Ошибки аутентификации. Тексты ошибок уходят клиенту как есть.
var (
	// ErrInvalidCredentials неизвестный пользователь или неверный пароль.
	// Оба случая неразличимы для клиента.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername username уже занят
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrUnauthenticated токен отсутствует, испорчен, истек или отозван
	ErrUnauthenticated = errors.New("not authenticated")
)

// ValidationError входные данные не прошли проверку
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
