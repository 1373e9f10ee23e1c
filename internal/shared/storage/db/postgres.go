package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"filevault/internal/shared/telemetry"
)

// Pool tunes a database/sql connection pool.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
	PingTimeout time.Duration
}

// ServerPool suits the long-running API process.
func ServerPool() Pool {
	return Pool{MaxOpen: 10, MaxIdle: 5, MaxLifetime: time.Hour, MaxIdleTime: 2 * time.Minute, PingTimeout: 5 * time.Second}
}

// LambdaPool keeps per-instance connections low; Lambda fans out by instance.
func LambdaPool() Pool {
	return Pool{MaxOpen: 2, MaxIdle: 1, MaxLifetime: 15 * time.Minute, MaxIdleTime: 30 * time.Second, PingTimeout: 3 * time.Second}
}

// MigratePool is a single connection for the migrate CLI.
func MigratePool() Pool {
	return Pool{MaxOpen: 1, MaxIdle: 1, MaxLifetime: time.Hour, PingTimeout: 5 * time.Second}
}

// FromEnv returns p with any DB_* overrides from the environment applied.
func (p Pool) FromEnv() Pool {
	ints := map[string]*int{
		"DB_MAX_OPEN_CONNS": &p.MaxOpen,
		"DB_MAX_IDLE_CONNS": &p.MaxIdle,
	}
	for key, dst := range ints {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			telemetry.Warn("db.env.invalid", map[string]any{"key": key, "error": err.Error()})
			continue
		}
		*dst = v
	}

	durations := map[string]*time.Duration{
		"DB_CONN_MAX_LIFETIME":  &p.MaxLifetime,
		"DB_CONN_MAX_IDLE_TIME": &p.MaxIdleTime,
		"DB_PING_TIMEOUT":       &p.PingTimeout,
	}
	for key, dst := range durations {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			continue
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			telemetry.Warn("db.env.invalid", map[string]any{"key": key, "error": err.Error()})
			continue
		}
		*dst = v
	}
	return p
}

func (p Pool) apply(conn *sql.DB) {
	if p.MaxOpen <= 0 {
		p.MaxOpen = 10
	}
	if p.MaxIdle <= 0 {
		p.MaxIdle = 5
	}
	if p.MaxLifetime <= 0 {
		p.MaxLifetime = time.Hour
	}
	conn.SetMaxOpenConns(p.MaxOpen)
	conn.SetMaxIdleConns(p.MaxIdle)
	conn.SetConnMaxLifetime(p.MaxLifetime)
	if p.MaxIdleTime > 0 {
		conn.SetConnMaxIdleTime(p.MaxIdleTime)
	}
}

// sqlOpen is swapped in tests.
var sqlOpen = sql.Open

// IsLambdaRuntime reports whether the process runs inside AWS Lambda.
func IsLambdaRuntime() bool {
	return strings.TrimSpace(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")) != ""
}

// OpenPostgres opens a pgx-backed pool and pings it before returning.
func OpenPostgres(ctx context.Context, databaseURL string, pool Pool) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	conn, err := sqlOpen("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool.apply(conn)

	timeout := pool.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logPoolStats(conn, "db.postgres.init")
	return conn, nil
}

// shared holds the pool reused across Lambda invocations.
var shared struct {
	mu   sync.Mutex
	conn *sql.DB
}

// SharedPostgres returns the process-wide pool, opening it on first use. A
// failed open is not cached, so the next invocation tries again.
func SharedPostgres(ctx context.Context, databaseURL string, pool Pool) (*sql.DB, error) {
	shared.mu.Lock()
	defer shared.mu.Unlock()

	if shared.conn != nil {
		telemetry.Debug("db.shared.reuse", nil)
		return shared.conn, nil
	}
	conn, err := OpenPostgres(ctx, databaseURL, pool)
	if err != nil {
		return nil, err
	}
	shared.conn = conn
	telemetry.Info("db.shared.init", nil)
	return conn, nil
}

func logPoolStats(conn *sql.DB, label string) {
	stats := conn.Stats()
	telemetry.Info(label, map[string]any{
		"open":     stats.OpenConnections,
		"in_use":   stats.InUse,
		"idle":     stats.Idle,
		"max_open": stats.MaxOpenConnections,
	})
}
