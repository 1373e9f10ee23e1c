package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
)

// Dialect names a supported migration target.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

func migrationDir(dialect Dialect) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "migrations/postgres", nil
	case DialectSQLite:
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}

func withGoose(dialect Dialect, fn func(dir string) error) error {
	dir, err := migrationDir(dialect)
	if err != nil {
		return err
	}
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect(string(dialect)); err != nil {
		return err
	}
	return fn(dir)
}

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB, dialect Dialect) error {
	if database == nil {
		return nil
	}
	return withGoose(dialect, func(dir string) error {
		return goose.UpContext(ctx, database, dir)
	})
}

// RollbackMigration reverts the most recently applied migration.
func RollbackMigration(ctx context.Context, database *sql.DB, dialect Dialect) error {
	return withGoose(dialect, func(dir string) error {
		return goose.DownContext(ctx, database, dir)
	})
}

// MigrationStatus logs the applied/pending state of every migration.
func MigrationStatus(ctx context.Context, database *sql.DB, dialect Dialect) error {
	return withGoose(dialect, func(dir string) error {
		return goose.StatusContext(ctx, database, dir)
	})
}

// MigrationNames lists the embedded migration files for a dialect.
func MigrationNames(dialect Dialect) ([]string, error) {
	dir, err := migrationDir(dialect)
	if err != nil {
		return nil, err
	}
	return fs.Glob(migrationFiles, dir+"/*.sql")
}
