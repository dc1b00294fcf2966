package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/carewatch/internal/server/identity"
)

// unauthenticatedMessage одинаковый ответ для любой причины отказа
const unauthenticatedMessage = "not authenticated"

// PrincipalResolver превращает access token в principal
type PrincipalResolver interface {
	Resolve(token string) (identity.Principal, error)
}

// BearerToken извлекает токен из заголовка "Authorization: Bearer <token>"
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

// Authenticate создает middleware для проверки access токена.
// При успехе principal привязывается к контексту запроса, иначе 401
// с одинаковым телом и следующий handler не вызывается.
func Authenticate(logger *slog.Logger, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := BearerToken(r)
			if !ok {
				logger.WarnContext(ctx, "missing or malformed Authorization header",
					slog.String("path", r.URL.Path))
				writeError(w, unauthenticatedMessage, http.StatusUnauthorized)
				return
			}

			principal, err := resolver.Resolve(token)
			if err != nil {
				logger.WarnContext(ctx, "invalid access token",
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
				writeError(w, unauthenticatedMessage, http.StatusUnauthorized)
				return
			}

			logger.DebugContext(ctx, "user authenticated",
				slog.String("user_id", principal.UserID),
				slog.String("username", principal.Username))

			next.ServeHTTP(w, r.WithContext(identity.WithPrincipal(ctx, principal)))
		})
	}
}
