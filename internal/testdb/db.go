package testdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/scroll-api/internal/platform/postgres"
	"github.com/phrazzld/scroll-api/internal/redact"
)

const setupTimeout = 30 * time.Second

// Open connects to the test database and migrates it to the latest version.
// The connection is closed when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		if IsCI() {
			t.Fatalf("no test database configured: set %s", EnvTestDatabaseURL)
		}
		t.Skipf("%s not set - skipping database test", EnvTestDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	logger := slog.Default().With(slog.String("component", "testdb"))

	db, err := postgres.Open(ctx, url, logger)
	if err != nil {
		t.Fatalf("open test database: %s", redact.Error(err))
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("close test database: %v", err)
		}
	})

	if err := postgres.Migrate(ctx, db, "up", logger); err != nil {
		t.Fatalf("migrate test database: %s", redact.Error(err))
	}
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin transaction: %s", redact.Error(err))
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
