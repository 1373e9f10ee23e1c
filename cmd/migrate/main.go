package main

// Run database migrations:
//   go run ./cmd/migrate up
//   go run ./cmd/migrate status --store sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"filevault/internal/shared/config"
	"filevault/internal/shared/storage/db"
	"filevault/internal/shared/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var store string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the filevault metadata schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&store, "store", "", "metadata store to migrate (postgres|sqlite); defaults to METADATA_STORE")

	run := func(action func(ctx context.Context, conn *sql.DB, dialect db.Dialect) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			conn, dialect, err := open(ctx, config.Load(), store)
			if err != nil {
				return err
			}
			defer conn.Close()
			return action(ctx, conn, dialect)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(db.RunMigrations),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE:  run(db.RollbackMigration),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(db.MigrationStatus),
		},
	)
	return root
}

func open(ctx context.Context, cfg config.Config, store string) (*sql.DB, db.Dialect, error) {
	if store == "" {
		store = cfg.MetadataStore
	}
	switch store {
	case "postgres", "pg":
		if cfg.DatabaseURL == "" {
			return nil, "", fmt.Errorf("DATABASE_URL is required for postgres")
		}
		conn, err := db.OpenPostgres(ctx, cfg.DatabaseURL, db.MigratePool().FromEnv())
		if err != nil {
			return nil, "", fmt.Errorf("connect database: %w", err)
		}
		return conn, db.DialectPostgres, nil
	case "sqlite":
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, "", fmt.Errorf("open sqlite: %w", err)
		}
		return conn, db.DialectSQLite, nil
	default:
		return nil, "", fmt.Errorf("metadata store %q has no schema to migrate", store)
	}
}
