// Command tools prepares a climate dataset for local runs: it creates the
// measurement/station schema and loads the CSV exports into it.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"climate-server/internal/config"
	"climate-server/internal/db"
	"climate-server/tools/migrate"
	"climate-server/tools/seed"
)

const usage = `usage: %s <command>
  migrate                                  create the measurement and station tables
  seed <measurements.csv> <stations.csv>   migrate, then load both CSV exports
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(1)
	}

	dbPath := os.Getenv("SQLITE_PATH")
	if dbPath == "" {
		dbPath = "Resources/hawaii.sqlite"
	}
	dbPath = filepath.Clean(dbPath)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	conn, err := db.Open(config.Config{
		SQLitePath:         dbPath,
		SQLiteMaxOpenConns: 1,
		SQLiteMaxIdleConns: 1,
	}, slog.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := db.Close(conn); closeErr != nil {
			slog.Error("db close", "err", closeErr)
		}
	}()

	ctx := context.Background()
	switch os.Args[1] {
	case "migrate":
		applied, err := migrate.Run(ctx, conn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d migrations applied\n", len(applied))
	case "seed":
		if len(os.Args) != 4 {
			fmt.Fprintf(os.Stderr, usage, os.Args[0])
			os.Exit(1)
		}
		if err := runSeed(ctx, conn, os.Args[2], os.Args[3]); err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func runSeed(ctx context.Context, conn *sql.DB, measurementsPath, stationsPath string) error {
	if _, err := migrate.Run(ctx, conn); err != nil {
		return err
	}

	loaders := []struct {
		path string
		load func(context.Context, *sql.DB, io.Reader) (int, error)
	}{
		{path: measurementsPath, load: seed.Measurements},
		{path: stationsPath, load: seed.Stations},
	}
	for _, l := range loaders {
		f, err := os.Open(l.path)
		if err != nil {
			return err
		}
		n, err := l.load(ctx, conn, f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", l.path, err)
		}
		fmt.Printf("%s: %d rows loaded\n", l.path, n)
	}
	return nil
}
