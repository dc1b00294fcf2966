package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/carewatch/internal/models"
	"github.com/iudanet/carewatch/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		user *models.User
		name string
	}{
		{
			name: "create new user successfully",
			user: &models.User{
				ID:           uuid.New().String(),
				Username:     "testuser1",
				PasswordHash: "hash123",
				CreatedAt:    time.Now(),
			},
		},
		{
			name: "create user with last login",
			user: &models.User{
				ID:           uuid.New().String(),
				Username:     "testuser2",
				PasswordHash: "hash456",
				CreatedAt:    time.Now(),
				LastLogin:    timePtr(time.Now()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateUser(ctx, tt.user)
			require.NoError(t, err)

			retrieved, err := s.GetUserByID(ctx, tt.user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, retrieved.ID)
			assert.Equal(t, tt.user.Username, retrieved.Username)
			assert.Equal(t, tt.user.PasswordHash, retrieved.PasswordHash)
			assert.WithinDuration(t, tt.user.CreatedAt, retrieved.CreatedAt, time.Second)
			assert.Equal(t, tt.user.LastLogin != nil, retrieved.LastLogin != nil)
		})
	}
}

func TestUserStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user1 := &models.User{
		ID:           uuid.New().String(),
		Username:     "duplicate",
		PasswordHash: "hash1",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user1))

	user2 := &models.User{
		ID:           uuid.New().String(),
		Username:     "duplicate",
		PasswordHash: "hash2",
		CreatedAt:    time.Now(),
	}
	err := s.CreateUser(ctx, user2)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)

	// Второй записи нет
	var count int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM users WHERE username = ?`, "duplicate").Scan(&count))
	assert.Equal(t, 1, count)

	retrieved, err := s.GetUserByUsername(ctx, "duplicate")
	require.NoError(t, err)
	assert.Equal(t, user1.ID, retrieved.ID)
}

func TestUserStorage_CreateUser_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	const workers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.CreateUser(ctx, &models.User{
				ID:           uuid.New().String(),
				Username:     "racer",
				PasswordHash: "hash",
				CreatedAt:    time.Now(),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, storage.ErrUserAlreadyExists):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}

func TestUserStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "findme",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
		LastLogin:    timePtr(time.Now()),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	tests := []struct {
		wantError error
		name      string
		username  string
	}{
		{
			name:     "get existing user",
			username: "findme",
		},
		{
			name:      "exact match only",
			username:  "FindMe",
			wantError: storage.ErrUserNotFound,
		},
		{
			name:      "get non-existent user",
			username:  "notfound",
			wantError: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retrieved, err := s.GetUserByUsername(ctx, tt.username)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, retrieved)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, retrieved.ID)
				assert.Equal(t, user.Username, retrieved.Username)
				assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
				assert.NotNil(t, retrieved.LastLogin)
			}
		})
	}
}

func TestUserStorage_GetUserByID(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := uuid.New().String()
	user := &models.User{
		ID:           userID,
		Username:     "testuser",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	tests := []struct {
		wantError error
		name      string
		userID    string
	}{
		{
			name:   "get existing user",
			userID: userID,
		},
		{
			name:      "get non-existent user",
			userID:    "nonexistent-id",
			wantError: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retrieved, err := s.GetUserByID(ctx, tt.userID)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, retrieved)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, retrieved.ID)
				assert.Equal(t, user.Username, retrieved.Username)
				assert.Nil(t, retrieved.LastLogin)
			}
		})
	}
}

func TestUserStorage_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := uuid.New().String()
	user := &models.User{
		ID:           userID,
		Username:     "logintest",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	tests := []struct {
		loginTime time.Time
		wantError error
		name      string
		userID    string
	}{
		{
			name:      "update last login for existing user",
			userID:    userID,
			loginTime: time.Now(),
		},
		{
			name:      "update last login for non-existent user",
			userID:    "nonexistent",
			loginTime: time.Now(),
			wantError: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.UpdateLastLogin(ctx, tt.userID, tt.loginTime)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)

				retrieved, err := s.GetUserByID(ctx, tt.userID)
				require.NoError(t, err)
				require.NotNil(t, retrieved.LastLogin)
				assert.WithinDuration(t, tt.loginTime, *retrieved.LastLogin, time.Second)
				// username и хеш не меняются
				assert.Equal(t, user.Username, retrieved.Username)
				assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
			}
		})
	}
}

// Helper function
func timePtr(t time.Time) *time.Time {
	return &t
}
