package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DB represents a database connection pool together with the SQL dialect it speaks
type DB struct {
	*sql.DB
	Dialect Dialect
}

// NewConnection creates a new database connection pool.
// postgres:// and postgresql:// URLs use pgx; sqlite:// and file: URLs open an on-disk SQLite file.
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	dialect, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	var sqlDB *sql.DB
	switch dialect {
	case Postgres:
		// Parse config to set timezone
		config, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database URL: %w", err)
		}

		// Set timezone to UTC for all connections
		config.RuntimeParams["timezone"] = "UTC"
		sqlDB = stdlib.OpenDB(*config)
	case SQLite:
		sqlDB, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY under concurrent saves
		sqlDB.SetMaxOpenConns(1)
	}

	// Test connection
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, Dialect: dialect}, nil
}

// NewInMemory opens a private in-memory SQLite database. Used by tests and local runs without DATABASE_URL.
func NewInMemory(ctx context.Context) (*DB, error) {
	return NewConnection(ctx, "sqlite://:memory:")
}

// ParseURL splits a database URL into its dialect and the driver DSN
func ParseURL(databaseURL string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return Postgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite URL is missing a path")
		}
		return SQLite, sqliteDSN(path), nil
	case strings.HasPrefix(databaseURL, "file:"):
		return SQLite, sqliteDSN(strings.TrimPrefix(databaseURL, "file:")), nil
	default:
		return "", "", fmt.Errorf("unsupported database URL %q", databaseURL)
	}
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)"
	}
	return "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
}

// Close closes the database connection pool
func (db *DB) Close() error {
	return db.DB.Close()
}
