package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/carewatch/internal/server/identity"
	"github.com/iudanet/carewatch/internal/server/jwt"
	"github.com/iudanet/carewatch/pkg/api"
)

var testSecret = []byte("middleware-secret-middleware-sec")

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupResolver(t *testing.T) (*identity.Resolver, *jwt.Codec) {
	t.Helper()

	codec, err := jwt.NewCodec(testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return identity.NewResolver(codec), codec
}

// principalHandler проверяет principal в контексте
func principalHandler(t *testing.T, expectedUserID, expectedUsername string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := identity.FromContext(r.Context())
		require.True(t, ok, "principal should be in context")
		assert.Equal(t, expectedUserID, p.UserID)
		assert.Equal(t, expectedUsername, p.Username)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func TestAuthenticate_Success(t *testing.T) {
	resolver, codec := setupResolver(t)

	token, _, err := codec.Issue("user123", "testuser")
	require.NoError(t, err)

	handler := Authenticate(setupTestLogger(), resolver)(principalHandler(t, "user123", "testuser"))

	for _, scheme := range []string{"Bearer", "bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", scheme+" "+token)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	resolver, codec := setupResolver(t)

	past := time.Now().Add(-time.Hour)
	expiredCodec, err := jwt.NewCodec(testSecret, time.Minute, time.Hour,
		jwt.WithClock(func() time.Time { return past }))
	require.NoError(t, err)
	expired, _, err := expiredCodec.Issue("user123", "testuser")
	require.NoError(t, err)

	foreignCodec, err := jwt.NewCodec([]byte("another-secret-another-secret!!!"), time.Minute, time.Hour)
	require.NoError(t, err)
	forged, _, err := foreignCodec.Issue("user123", "testuser")
	require.NoError(t, err)

	valid, _, err := codec.Issue("user123", "testuser")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", valid},
		{"basic scheme", "Basic dXNlcjpwYXNz"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
		{"forged token", "Bearer " + forged},
	}

	var bodies []string

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Authenticate(setupTestLogger(), resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.False(t, called, "next handler must not be called")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "Unauthorized", resp.Error)
			assert.Equal(t, "not authenticated", resp.Message)

			bodies = append(bodies, resp.Message)
		})
	}

	// Ответ не раскрывает причину отказа
	for _, body := range bodies {
		assert.Equal(t, bodies[0], body)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"valid", "Bearer abc", "abc", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"extra spaces", "Bearer   abc  ", "abc", true},
		{"empty", "", "", false},
		{"scheme only", "Bearer", "", false},
		{"blank token", "Bearer   ", "", false},
		{"other scheme", "Token abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, ok := BearerToken(req)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}
