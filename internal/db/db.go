package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"climate-server/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

// Open opens the climate dataset described by cfg and checks connectivity.
// With cfg.SQLiteLogQueries every statement is logged at debug level through logger.
func Open(cfg config.Config, logger *slog.Logger) (*sql.DB, error) {
	dsn := buildDSN(cfg)

	var db *sql.DB
	if cfg.SQLiteLogQueries {
		db = sql.OpenDB(NewTracingConnector(dsn, logger))
	} else {
		var err error
		db, err = sql.Open(driverName, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	// One connection by default: database/sql then serialises every handler's
	// queries onto it.
	if cfg.SQLiteMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.SQLiteMaxOpenConns)
	}
	if cfg.SQLiteMaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.SQLiteMaxIdleConns)
	}
	if cfg.SQLiteConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.SQLiteConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// RequireTables fails when any of the named tables is missing from the schema.
func RequireTables(ctx context.Context, db *sql.DB, tables ...string) error {
	for _, name := range tables {
		var n int
		err := db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
		).Scan(&n)
		if err != nil {
			return fmt.Errorf("check table %s: %w", name, err)
		}
		if n == 0 {
			return fmt.Errorf("table %q not found in dataset", name)
		}
	}
	return nil
}

func buildDSN(cfg config.Config) string {
	if cfg.SQLiteDSN != "" {
		return cfg.SQLiteDSN
	}

	params := []string{"_busy_timeout=5000"}
	if cfg.SQLiteReadOnly {
		// mode=ro never creates the file, so a missing dataset fails the startup ping.
		params = append(params, "mode=ro")
	} else {
		params = append(params, "_foreign_keys=on")
	}

	path := cfg.SQLitePath
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&")
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&"))
}
