package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/iudanet/carewatch/internal/server/identity"
)

// Recovery создает middleware для восстановления после паники.
// Обычная паника логируется со стеком и превращается в 500.
// Паника identity.ErrNoPrincipal означает ошибку конфигурации маршрутов:
// ответ не пишется, соединение обрывается через http.ErrAbortHandler.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				err, isErr := rec.(error)

				// http.ErrAbortHandler пропускаем дальше как есть
				if isErr && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				stackTrace := debug.Stack()

				if isErr && errors.Is(err, identity.ErrNoPrincipal) {
					logger.ErrorContext(r.Context(), "handler requires principal but none is bound",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(stackTrace)))
					panic(http.ErrAbortHandler)
				}

				logger.ErrorContext(r.Context(), "Panic recovered",
					slog.Any("error", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("stack", string(stackTrace)))

				// Возвращаем generic ошибку клиенту (не раскрываем детали)
				writeError(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
