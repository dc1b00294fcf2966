package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/carewatch/internal/client/api"
	"github.com/iudanet/carewatch/internal/client/auth"
	"github.com/iudanet/carewatch/internal/client/iocli"
	"github.com/iudanet/carewatch/internal/client/storage/boltdb"
)

// DefaultFactory собирает Cli поверх BoltDB, HTTP клиента и stdin/stdout
func DefaultFactory(logger *slog.Logger) Factory {
	return func(ctx context.Context, opts Options) (*Cli, func() error, error) {
		store, err := boltdb.New(ctx, opts.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}

		apiClient := api.NewClient(opts.ServerURL)
		sessions := auth.NewService(apiClient, store, logger)

		return New(iocli.NewStdio(), sessions, apiClient), store.Close, nil
	}
}
