package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/carewatch/internal/models"
	"github.com/iudanet/carewatch/internal/server/identity"
	"github.com/iudanet/carewatch/internal/server/storage"
	"github.com/iudanet/carewatch/internal/validation"
	"github.com/iudanet/carewatch/pkg/api"
)

// Параметры пагинации
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ReadingHandler обрабатывает запросы физиологических показаний.
// Все маршруты защищены: владелец записи берется только из principal.
type ReadingHandler struct {
	responder
	storage storage.ReadingStorage
	now     func() time.Time
}

// NewReadingHandler создает handler показаний
func NewReadingHandler(logger *slog.Logger, readingStorage storage.ReadingStorage) *ReadingHandler {
	return &ReadingHandler{
		responder: responder{logger: logger},
		storage:   readingStorage,
		now:       time.Now,
	}
}

// Mock обрабатывает GET /physiological/mock
// Возвращает случайные показания в нормальном диапазоне
func (h *ReadingHandler) Mock(w http.ResponseWriter, r *http.Request) {
	resp := api.MockReading{
		HeartRate:      65 + 20*rand.Float64(),
		TargetDistance: 0.5 + 3*rand.Float64(),
		Timestamp:      float64(h.now().UnixMilli()) / 1000,
		Status:         models.ReadingStatusOK,
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// List обрабатывает GET /physiological/list?page=&pageSize=
func (h *ReadingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := identity.MustFromContext(ctx)

	page, err := queryInt(r, "page", 1)
	if err != nil || page < 1 {
		h.sendError(w, "page must be a positive integer", http.StatusBadRequest)
		return
	}

	pageSize, err := queryInt(r, "pageSize", defaultPageSize)
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		h.sendError(w, "pageSize must be between 1 and 100", http.StatusBadRequest)
		return
	}

	readings, total, err := h.storage.ListUserReadings(ctx, principal.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list readings",
			slog.String("user_id", principal.UserID),
			slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ReadingListResponse{
		Rows:  make([]api.Reading, 0, len(readings)),
		Total: total,
	}
	for _, reading := range readings {
		resp.Rows = append(resp.Rows, toAPIReading(reading))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Add обрабатывает POST /physiological/add
// user_id из тела запроса игнорируется, владелец = текущий пользователь
func (h *ReadingHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := identity.MustFromContext(ctx)

	var req api.AddReadingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode reading", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.UserID != "" && req.UserID != principal.UserID {
		h.logger.WarnContext(ctx, "ignoring foreign user_id in reading",
			slog.String("user_id", principal.UserID),
			slog.String("claimed_user_id", req.UserID))
	}

	now := h.now()
	reading := &models.Reading{
		UserID:         principal.UserID,
		HeartRate:      req.HeartRate,
		TargetDistance: req.TargetDistance,
		Status:         req.Status,
		RecordedAt:     now,
		CreatedAt:      now,
	}
	if req.RecordedAt != nil {
		reading.RecordedAt = *req.RecordedAt
	}
	if reading.Status == "" {
		reading.Status = models.ReadingStatusOK
	}

	if err := validation.ValidateReading(reading); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.storage.SaveReading(ctx, reading); err != nil {
		h.logger.ErrorContext(ctx, "failed to save reading",
			slog.String("user_id", principal.UserID),
			slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "reading saved",
		slog.String("user_id", principal.UserID),
		slog.Int64("reading_id", reading.ID))

	h.sendJSON(w, toAPIReading(reading), http.StatusCreated)
}

// Delete обрабатывает POST /physiological/delete?id=
// Удалить можно только свою запись, чужая неотличима от несуществующей
func (h *ReadingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := identity.MustFromContext(ctx)

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id < 1 {
		h.sendError(w, "id must be a positive integer", http.StatusBadRequest)
		return
	}

	if err := h.storage.DeleteUserReading(ctx, principal.UserID, id); err != nil {
		if errors.Is(err, storage.ErrReadingNotFound) {
			h.sendError(w, "reading not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete reading",
			slog.String("user_id", principal.UserID),
			slog.Int64("reading_id", id),
			slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// queryInt читает целый query параметр, def если параметр не задан
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func toAPIReading(r *models.Reading) api.Reading {
	return api.Reading{
		ID:             r.ID,
		UserID:         r.UserID,
		HeartRate:      r.HeartRate,
		TargetDistance: r.TargetDistance,
		Status:         r.Status,
		RecordedAt:     r.RecordedAt,
		CreatedAt:      r.CreatedAt,
	}
}
