package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/carewatch/internal/models"
	"github.com/iudanet/carewatch/internal/server/storage"
)

// SaveReading inserts a new reading and sets its ID
func (s *Storage) SaveReading(ctx context.Context, reading *models.Reading) error {
	query := `
		INSERT INTO readings (user_id, heart_rate, target_distance, status, recorded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		reading.UserID,
		reading.HeartRate,
		reading.TargetDistance,
		reading.Status,
		reading.RecordedAt.UnixMilli(),
		reading.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	reading.ID = id

	return nil
}

// ListUserReadings returns one page of the user's readings, newest first
func (s *Storage) ListUserReadings(ctx context.Context, userID string, limit, offset int) ([]*models.Reading, int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM readings WHERE user_id = ?`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count readings: %w", err)
	}

	query := `
		SELECT id, user_id, heart_rate, target_distance, status, recorded_at, created_at
		FROM readings
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query readings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	readings := make([]*models.Reading, 0, limit)

	for rows.Next() {
		reading := &models.Reading{}
		var recordedAt, createdAt int64
		if err := rows.Scan(
			&reading.ID,
			&reading.UserID,
			&reading.HeartRate,
			&reading.TargetDistance,
			&reading.Status,
			&recordedAt,
			&createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan reading: %w", err)
		}
		reading.RecordedAt = time.UnixMilli(recordedAt)
		reading.CreatedAt = time.UnixMilli(createdAt)
		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return readings, total, nil
}

// DeleteUserReading deletes reading owned by the user
func (s *Storage) DeleteUserReading(ctx context.Context, userID string, id int64) error {
	query := `DELETE FROM readings WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reading: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrReadingNotFound
	}

	return nil
}

var _ storage.Storage = (*Storage)(nil)
