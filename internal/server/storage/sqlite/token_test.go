package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/carewatch/internal/models"
	"github.com/iudanet/carewatch/internal/server/storage"
)

func TestTokenStorage_SaveAndGetRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	token := &models.RefreshToken{
		TokenHash: "hash-findme",
		UserID:    userID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRefreshToken(ctx, token))

	tests := []struct {
		wantError error
		name      string
		tokenHash string
	}{
		{
			name:      "get existing token",
			tokenHash: "hash-findme",
		},
		{
			name:      "get non-existent token",
			tokenHash: "notfound",
			wantError: storage.ErrTokenNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retrieved, err := s.GetRefreshToken(ctx, tt.tokenHash)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, retrieved)
			} else {
				require.NoError(t, err)
				assert.Equal(t, token.TokenHash, retrieved.TokenHash)
				assert.Equal(t, token.UserID, retrieved.UserID)
				assert.WithinDuration(t, token.ExpiresAt, retrieved.ExpiresAt, time.Second)
			}
		})
	}
}

func TestTokenStorage_SaveRefreshToken_UnknownUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	// foreign_keys = ON
	err := s.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenHash: "orphan",
		UserID:    "no-such-user",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	})
	assert.Error(t, err)
}

func TestTokenStorage_DeleteRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenHash: "todelete",
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	require.NoError(t, s.DeleteRefreshToken(ctx, "todelete"))

	_, err := s.GetRefreshToken(ctx, "todelete")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	err = s.DeleteRefreshToken(ctx, "todelete")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_DeleteUserTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	otherID := createTestUser(t, ctx, s)

	for _, hash := range []string{"t1", "t2", "t3"} {
		require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
			TokenHash: hash,
			UserID:    userID,
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}))
	}
	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenHash: "other",
		UserID:    otherID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	deleted, err := s.DeleteUserTokens(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	deleted, err = s.DeleteUserTokens(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	// Токены другого пользователя не затронуты
	_, err = s.GetRefreshToken(ctx, "other")
	assert.NoError(t, err)
}

func TestTokenStorage_DeleteExpiredTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenHash: "expired",
		UserID:    userID,
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}))
	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenHash: "valid",
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	deleted, err := s.DeleteExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = s.GetRefreshToken(ctx, "expired")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	_, err = s.GetRefreshToken(ctx, "valid")
	assert.NoError(t, err)
}
