package db

import (
	"context"
	"path/filepath"
	"testing"

	"climate-server/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "explicit dsn wins",
			cfg:  config.Config{SQLiteDSN: "file::memory:?cache=shared", SQLitePath: "ignored.sqlite", SQLiteReadOnly: true},
			want: "file::memory:?cache=shared",
		},
		{
			name: "read-only path",
			cfg:  config.Config{SQLitePath: "Resources/hawaii.sqlite", SQLiteReadOnly: true},
			want: "file:Resources/hawaii.sqlite?_busy_timeout=5000&mode=ro",
		},
		{
			name: "writable path",
			cfg:  config.Config{SQLitePath: "/tmp/hawaii.sqlite"},
			want: "file:/tmp/hawaii.sqlite?_busy_timeout=5000&_foreign_keys=on",
		},
		{
			name: "file uri with query",
			cfg:  config.Config{SQLitePath: "file:/data/hawaii.sqlite?cache=private", SQLiteReadOnly: true},
			want: "file:/data/hawaii.sqlite?cache=private&_busy_timeout=5000&mode=ro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildDSN(tt.cfg); got != tt.want {
				t.Errorf("buildDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpen_ReadOnlyMissingFileFails(t *testing.T) {
	cfg := config.Config{
		SQLitePath:         filepath.Join(t.TempDir(), "absent.sqlite"),
		SQLiteReadOnly:     true,
		SQLiteMaxOpenConns: 1,
		SQLiteMaxIdleConns: 1,
	}
	conn, err := Open(cfg, nil)
	if err == nil {
		_ = Close(conn)
		t.Fatal("Open() error = nil, want ping failure for a missing read-only dataset")
	}
}

func TestOpen_RequireTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	cfg := config.Config{
		SQLitePath:         path,
		SQLiteMaxOpenConns: 1,
		SQLiteMaxIdleConns: 1,
		SQLiteLogQueries:   true,
	}
	conn, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = Close(conn) }()

	ctx := context.Background()
	if _, err := conn.ExecContext(ctx, `CREATE TABLE measurement (date TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	if err := RequireTables(ctx, conn, "measurement"); err != nil {
		t.Errorf("RequireTables(measurement) error = %v, want nil", err)
	}
	if err := RequireTables(ctx, conn, "measurement", "station"); err == nil {
		t.Error("RequireTables(measurement, station) error = nil, want missing station")
	}
}

func TestClose_Nil(t *testing.T) {
	if err := Close(nil); err != nil {
		t.Errorf("Close(nil) = %v, want nil", err)
	}
}
