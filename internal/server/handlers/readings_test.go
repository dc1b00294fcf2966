package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/carewatch/internal/models"
	"github.com/iudanet/carewatch/internal/server/identity"
	"github.com/iudanet/carewatch/internal/server/storage"
	"github.com/iudanet/carewatch/pkg/api"
)

// mockReadingStorage in-memory реализация ReadingStorage
type mockReadingStorage struct {
	err      error
	readings []*models.Reading
	lastArgs struct {
		userID        string
		limit, offset int
	}
	nextID int64
	mu     sync.Mutex
}

func (m *mockReadingStorage) SaveReading(_ context.Context, reading *models.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.nextID++
	reading.ID = m.nextID
	copied := *reading
	m.readings = append(m.readings, &copied)
	return nil
}

func (m *mockReadingStorage) ListUserReadings(_ context.Context, userID string, limit, offset int) ([]*models.Reading, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastArgs.userID, m.lastArgs.limit, m.lastArgs.offset = userID, limit, offset
	if m.err != nil {
		return nil, 0, m.err
	}

	var own []*models.Reading
	for i := len(m.readings) - 1; i >= 0; i-- {
		if m.readings[i].UserID == userID {
			own = append(own, m.readings[i])
		}
	}

	total := int64(len(own))
	if offset >= len(own) {
		return nil, total, nil
	}
	end := min(offset+limit, len(own))
	return own[offset:end], total, nil
}

func (m *mockReadingStorage) DeleteUserReading(_ context.Context, userID string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	for i, r := range m.readings {
		if r.ID == id && r.UserID == userID {
			m.readings = append(m.readings[:i], m.readings[i+1:]...)
			return nil
		}
	}
	return storage.ErrReadingNotFound
}

func withPrincipal(r *http.Request, userID, username string) *http.Request {
	return r.WithContext(identity.WithPrincipal(r.Context(), identity.Principal{UserID: userID, Username: username}))
}

func setupReadingHandler() (*ReadingHandler, *mockReadingStorage) {
	store := &mockReadingStorage{}
	h := NewReadingHandler(setupTestLogger(), store)
	h.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return h, store
}

func TestReadingHandler_Add_StampsOwnerFromPrincipal(t *testing.T) {
	handler, store := setupReadingHandler()

	body := `{"user_id":"mallory","heart_rate":72.5,"target_distance":1.2,"status":"ok"}`
	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/physiological/add", strings.NewReader(body)), "alice-id", "alice")
	w := httptest.NewRecorder()

	handler.Add(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.Reading
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "alice-id", resp.UserID)
	assert.Equal(t, int64(1), resp.ID)

	require.Len(t, store.readings, 1)
	assert.Equal(t, "alice-id", store.readings[0].UserID)
	assert.Equal(t, 72.5, store.readings[0].HeartRate)
	assert.Equal(t, handler.now(), store.readings[0].RecordedAt)
}

func TestReadingHandler_Add_Defaults(t *testing.T) {
	handler, store := setupReadingHandler()

	recordedAt := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/physiological/add", jsonBody(t, api.AddReadingRequest{
		HeartRate:  60,
		RecordedAt: &recordedAt,
	})), "alice-id", "alice")
	w := httptest.NewRecorder()

	handler.Add(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.readings, 1)
	assert.Equal(t, models.ReadingStatusOK, store.readings[0].Status)
	assert.True(t, recordedAt.Equal(store.readings[0].RecordedAt))
}

func TestReadingHandler_Add_Invalid(t *testing.T) {
	handler, store := setupReadingHandler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{"},
		{"negative heart rate", `{"heart_rate":-1}`},
		{"heart rate out of range", `{"heart_rate":1000}`},
		{"unknown status", `{"heart_rate":70,"status":"dead"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withPrincipal(httptest.NewRequest(http.MethodPost, "/physiological/add", strings.NewReader(tt.body)), "alice-id", "alice")
			w := httptest.NewRecorder()

			handler.Add(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	assert.Empty(t, store.readings)
}

func TestReadingHandler_Add_StorageError(t *testing.T) {
	handler, store := setupReadingHandler()
	store.err = errors.New("disk full")

	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/physiological/add", strings.NewReader(`{"heart_rate":70}`)), "alice-id", "alice")
	w := httptest.NewRecorder()

	handler.Add(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk full")
}

func TestReadingHandler_Add_WithoutPrincipalPanics(t *testing.T) {
	handler, store := setupReadingHandler()

	assert.PanicsWithValue(t, identity.ErrNoPrincipal, func() {
		handler.Add(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/physiological/add", strings.NewReader(`{"heart_rate":70}`)))
	})
	assert.Empty(t, store.readings)
}

func TestReadingHandler_List(t *testing.T) {
	handler, store := setupReadingHandler()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveReading(ctx, &models.Reading{UserID: "alice-id", HeartRate: float64(60 + i), Status: "ok"}))
	}
	require.NoError(t, store.SaveReading(ctx, &models.Reading{UserID: "bob-id", HeartRate: 90, Status: "ok"}))

	t.Run("defaults", func(t *testing.T) {
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/physiological/list", nil), "alice-id", "alice")
		w := httptest.NewRecorder()

		handler.List(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.ReadingListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, int64(3), resp.Total)
		require.Len(t, resp.Rows, 3)
		assert.Equal(t, int64(3), resp.Rows[0].ID, "newest first")
		for _, row := range resp.Rows {
			assert.Equal(t, "alice-id", row.UserID)
		}
		assert.Equal(t, defaultPageSize, store.lastArgs.limit)
		assert.Equal(t, 0, store.lastArgs.offset)
	})

	t.Run("second page", func(t *testing.T) {
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/physiological/list?page=2&pageSize=2", nil), "alice-id", "alice")
		w := httptest.NewRecorder()

		handler.List(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.ReadingListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, int64(3), resp.Total)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, int64(1), resp.Rows[0].ID)
		assert.Equal(t, 2, store.lastArgs.offset)
	})

	t.Run("empty page returns empty rows", func(t *testing.T) {
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/physiological/list", nil), "carol-id", "carol")
		w := httptest.NewRecorder()

		handler.List(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"rows":[],"total":0}`, w.Body.String())
	})

	for _, query := range []string{"page=0", "page=abc", "pageSize=0", "pageSize=101"} {
		t.Run("invalid "+query, func(t *testing.T) {
			req := withPrincipal(httptest.NewRequest(http.MethodGet, "/physiological/list?"+query, nil), "alice-id", "alice")
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestReadingHandler_Delete(t *testing.T) {
	handler, store := setupReadingHandler()
	ctx := context.Background()

	own := &models.Reading{UserID: "alice-id", HeartRate: 70, Status: "ok"}
	require.NoError(t, store.SaveReading(ctx, own))
	foreign := &models.Reading{UserID: "bob-id", HeartRate: 80, Status: "ok"}
	require.NoError(t, store.SaveReading(ctx, foreign))

	send := func(query string) int {
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/physiological/delete?"+query, nil), "alice-id", "alice")
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusBadRequest, send("id=abc"))
	assert.Equal(t, http.StatusBadRequest, send(""))
	assert.Equal(t, http.StatusNotFound, send("id=2"), "foreign reading must look missing")
	assert.Equal(t, http.StatusNoContent, send("id=1"))
	assert.Equal(t, http.StatusNotFound, send("id=1"))

	require.Len(t, store.readings, 1)
	assert.Equal(t, "bob-id", store.readings[0].UserID)
}

func TestReadingHandler_Mock(t *testing.T) {
	handler, _ := setupReadingHandler()

	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/physiological/mock", nil), "alice-id", "alice")
	w := httptest.NewRecorder()

	handler.Mock(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.MockReading
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.GreaterOrEqual(t, resp.HeartRate, 65.0)
	assert.Less(t, resp.HeartRate, 85.0)
	assert.GreaterOrEqual(t, resp.TargetDistance, 0.5)
	assert.Less(t, resp.TargetDistance, 3.5)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, float64(handler.now().Unix()), resp.Timestamp)
}
