// Package identity связывает аутентифицированного пользователя с запросом.
package identity

import (
	"context"
	"errors"
)

// ErrNoPrincipal ошибка программиста: обработчик, которому нужен владелец,
// вызван без middleware аутентификации.
var ErrNoPrincipal = errors.New("no principal in request context")

// Principal аутентифицированный пользователь текущего запроса.
// Передается по значению, изменить его после привязки к контексту нельзя.
type Principal struct {
	UserID   string
	Username string
}

type principalKey struct{}

// WithPrincipal возвращает контекст с привязанным principal
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext извлекает principal из контекста
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// MustFromContext извлекает principal и паникует с ErrNoPrincipal, если его нет
func MustFromContext(ctx context.Context) Principal {
	p, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoPrincipal)
	}
	return p
}
