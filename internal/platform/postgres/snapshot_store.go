package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/scroll-api/internal/platform/logger"
	"github.com/phrazzld/scroll-api/internal/store"
)

// DefaultSnapshotKey is the row ID used when none is configured.
const DefaultSnapshotKey = "default"

// DBTX is the subset of *sql.DB and *sql.Tx the snapshot store needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SnapshotStore implements store.Persister on a single JSONB row.
type SnapshotStore struct {
	db     DBTX
	key    string
	logger *slog.Logger
}

var _ store.Persister = (*SnapshotStore)(nil)

// NewSnapshotStore creates a persister for the row identified by key.
// If logger is nil, a default logger will be used.
func NewSnapshotStore(db DBTX, key string, logger *slog.Logger) *SnapshotStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if key == "" {
		key = DefaultSnapshotKey
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SnapshotStore{
		db:     db,
		key:    key,
		logger: logger.With(slog.String("component", "snapshot_store")),
	}
}

// Load implements store.Persister. A missing row means no snapshot yet.
func (s *SnapshotStore) Load(ctx context.Context) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM store_snapshots WHERE id = $1`,
		s.key,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no snapshot row", slog.String("key", s.key))
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load snapshot",
			slog.String("error", err.Error()),
			slog.String("key", s.key))
		return nil, MapError(err)
	}

	return doc, nil
}

// Save implements store.Persister.
func (s *SnapshotStore) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO store_snapshots (id, document, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (id) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`, s.key, string(data))
	if err != nil {
		return MapError(err)
	}
	return nil
}

// Target implements store.Persister.
func (s *SnapshotStore) Target() string {
	return "postgres:store_snapshots/" + s.key
}
