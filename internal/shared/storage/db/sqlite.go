package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite" // register modernc sqlite as database/sql driver
)

const sqliteBusyTimeoutMS = 5000

// OpenSQLite opens (creating if needed) the SQLite database at path and applies
// the pragmas the service relies on. Use ":memory:" for an ephemeral database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers.
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)
	database.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", sqliteBusyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	logPoolStats(database, "db.sqlite.init")
	return database, nil
}

func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("sqlite path is required")
	}
	if path == ":memory:" {
		return path, nil
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String(), nil
}

// SQLiteTimeLayout is a fixed-width UTC layout so TEXT columns sort chronologically.
const SQLiteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatSQLiteTime renders t for storage in a TEXT column.
func FormatSQLiteTime(t time.Time) string {
	return t.UTC().Format(SQLiteTimeLayout)
}

// ParseSQLiteTime parses a value written by FormatSQLiteTime.
func ParseSQLiteTime(value string) (time.Time, error) {
	t, err := time.Parse(SQLiteTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse sqlite time %q: %w", value, err)
	}
	return t.UTC(), nil
}
