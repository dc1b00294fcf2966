// Package storage describes the persistence contracts of the server.
// Implementations live in the sqlite and postgres subpackages.
package storage

import "context"

// Storage aggregates every repository the server needs
type Storage interface {
	UserStorage
	TokenStorage
	ReadingStorage

	// Ping checks database availability
	Ping(ctx context.Context) error

	// Close closes the database connection
	Close() error
}
