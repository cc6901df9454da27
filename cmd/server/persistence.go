package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scroll-api/internal/config"
	"github.com/phrazzld/scroll-api/internal/platform/postgres"
	"github.com/phrazzld/scroll-api/internal/schemas"
	"github.com/phrazzld/scroll-api/internal/store"
)

// openStore loads the store from the configured backend. The returned close
// function releases the backend and is safe to call once the store is no
// longer used.
func openStore(
	ctx context.Context,
	cfg *config.Config,
	validator *schemas.Validator,
	logger *slog.Logger,
) (*store.Store, func() error, error) {
	persister, closeFn, err := openPersister(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(ctx, persister, validator, logger)
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("failed to load store: %w", err)
	}
	return st, closeFn, nil
}

func openPersister(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Persister, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, db, "up", logger); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		return postgres.NewSnapshotStore(db, cfg.Store.SnapshotKey, logger), db.Close, nil

	default:
		return store.NewFileSnapshot(cfg.Store.SnapshotPath), func() error { return nil }, nil
	}
}
