package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/phrazzld/scroll-api/internal/config"
	"github.com/phrazzld/scroll-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// errMigrateFileBackend is returned when migrate runs against the file backend.
var errMigrateFileBackend = errors.New("migrate requires store.backend=postgres")

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|reset|status|version]",
	Short:     "Run database migrations for the postgres store backend",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: postgres.MigrationCommands,
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command, err := migrationCommand(args)
	if err != nil {
		return err
	}

	cfg, logger, err := loadAppConfig()
	if err != nil {
		return err
	}
	if cfg.Store.Backend != config.BackendPostgres {
		return errMigrateFileBackend
	}

	ctx := commandContext(cmd)
	db, err := postgres.Open(ctx, cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", "error", err)
		}
	}()

	return postgres.Migrate(ctx, db, command, logger)
}

// migrationCommand returns the requested goose command, "up" by default.
func migrationCommand(args []string) (string, error) {
	if len(args) == 0 {
		return "up", nil
	}
	if !slices.Contains(postgres.MigrationCommands, args[0]) {
		return "", fmt.Errorf("unknown migration command %q (expected one of %v)", args[0], postgres.MigrationCommands)
	}
	return args[0], nil
}
