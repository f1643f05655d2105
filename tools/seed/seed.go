// Package seed loads the climate CSV exports (hawaii_measurements.csv,
// hawaii_stations.csv) into the measurement and station tables.
package seed

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	measurementColumns = []string{"station", "date", "prcp", "tobs"}
	stationColumns     = []string{"station", "name", "latitude", "longitude", "elevation"}
)

// Measurements inserts every row of r (header: station,date,prcp,tobs) and
// returns the number of rows written. An empty prcp cell is stored as NULL.
func Measurements(ctx context.Context, db *sql.DB, r io.Reader) (int, error) {
	return load(ctx, db, r, "measurement", measurementColumns, func(rec map[string]string) ([]any, error) {
		prcp, err := nullableFloat(rec["prcp"])
		if err != nil {
			return nil, fmt.Errorf("prcp: %w", err)
		}
		tobs, err := strconv.ParseFloat(rec["tobs"], 64)
		if err != nil {
			return nil, fmt.Errorf("tobs: %w", err)
		}
		return []any{rec["station"], rec["date"], prcp, tobs}, nil
	})
}

// Stations inserts every row of r (header: station,name,latitude,longitude,elevation).
func Stations(ctx context.Context, db *sql.DB, r io.Reader) (int, error) {
	return load(ctx, db, r, "station", stationColumns, func(rec map[string]string) ([]any, error) {
		out := []any{rec["station"], rec["name"]}
		for _, col := range stationColumns[2:] {
			v, err := nullableFloat(rec[col])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", col, err)
			}
			out = append(out, v)
		}
		return out, nil
	})
}

func load(ctx context.Context, db *sql.DB, r io.Reader, table string, columns []string, row func(map[string]string) ([]any, error)) (int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read %s header: %w", table, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("%s csv: missing column %q", table, col)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders,
	))
	if err != nil {
		return 0, fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	n := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("read %s row %d: %w", table, n+1, err)
		}
		rec := make(map[string]string, len(columns))
		for _, col := range columns {
			rec[col] = strings.TrimSpace(fields[index[col]])
		}
		args, err := row(rec)
		if err != nil {
			return n, fmt.Errorf("%s row %d: %w", table, n+1, err)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return n, fmt.Errorf("insert %s row %d: %w", table, n+1, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func nullableFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
