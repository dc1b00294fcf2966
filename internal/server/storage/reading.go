package storage

import (
	"context"

	"github.com/iudanet/carewatch/internal/models"
)

// ReadingStorage defines interface for physiological readings persistence
// Every query is scoped by owner user ID
type ReadingStorage interface {
	// SaveReading inserts a new reading and sets its ID
	SaveReading(ctx context.Context, reading *models.Reading) error

	// ListUserReadings returns one page of the user's readings, newest first,
	// and the total number of readings owned by the user
	ListUserReadings(ctx context.Context, userID string, limit, offset int) ([]*models.Reading, int64, error)

	// DeleteUserReading deletes reading owned by the user
	// Returns ErrReadingNotFound if reading doesn't exist or belongs to another user
	DeleteUserReading(ctx context.Context, userID string, id int64) error
}
