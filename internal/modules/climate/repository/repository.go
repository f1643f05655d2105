package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"log/slog"

	"climate-server/internal/modules/climate/types"
)

//go:embed sql/get-oldest-date.sql
var getOldestDateSQL string

//go:embed sql/get-latest-date.sql
var getLatestDateSQL string

//go:embed sql/get-dates.sql
var getDatesSQL string

//go:embed sql/get-precipitation.sql
var getPrecipitationSQL string

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-temperature-observations.sql
var getTemperatureObservationsSQL string

//go:embed sql/get-temperature-stats-from.sql
var getTemperatureStatsFromSQL string

//go:embed sql/get-temperature-stats-between.sql
var getTemperatureStatsBetweenSQL string

// ClimateRepository reads the measurement and station tables. Dates are
// ISO 8601 strings and every range filter compares them as text.
type ClimateRepository interface {
	// GetOldestDate and GetLatestDate return ok=false when the measurement table is empty.
	GetOldestDate(ctx context.Context) (date string, ok bool, err error)
	GetLatestDate(ctx context.Context) (date string, ok bool, err error)
	GetDates(ctx context.Context) ([]string, error)
	GetPrecipitation(ctx context.Context) ([]types.Precipitation, error)
	GetStations(ctx context.Context) ([]types.Station, error)
	GetTemperatureObservations(ctx context.Context, from, to string) ([]types.TemperatureObservation, error)
	// GetTemperatureStatsFrom aggregates tobs over date >= from.
	GetTemperatureStatsFrom(ctx context.Context, from string) (types.TemperatureStats, error)
	// GetTemperatureStatsBetween aggregates tobs over from <= date <= to.
	GetTemperatureStatsBetween(ctx context.Context, from, to string) (types.TemperatureStats, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) GetOldestDate(ctx context.Context) (string, bool, error) {
	return r.queryDate(ctx, getOldestDateSQL)
}

func (r *repositoryImpl) GetLatestDate(ctx context.Context) (string, bool, error) {
	return r.queryDate(ctx, getLatestDateSQL)
}

func (r *repositoryImpl) queryDate(ctx context.Context, query string) (string, bool, error) {
	var d sql.NullString
	if err := r.db.QueryRowContext(ctx, query).Scan(&d); err != nil {
		return "", false, err
	}
	return d.String, d.Valid, nil
}

func (r *repositoryImpl) GetDates(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, getDatesSQL)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, "dates")

	var out []string
	for rows.Next() {
		var d sql.NullString
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		if d.Valid {
			out = append(out, d.String)
		}
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetPrecipitation(ctx context.Context) ([]types.Precipitation, error) {
	rows, err := r.db.QueryContext(ctx, getPrecipitationSQL)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, "precipitation")

	var out []types.Precipitation
	for rows.Next() {
		var (
			p    types.Precipitation
			prcp sql.NullFloat64
		)
		if err := rows.Scan(&p.Date, &prcp); err != nil {
			return nil, err
		}
		p.Value = floatPtr(prcp)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetStations(ctx context.Context) ([]types.Station, error) {
	rows, err := r.db.QueryContext(ctx, getStationsSQL)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, "stations")

	var out []types.Station
	for rows.Next() {
		var (
			s                   types.Station
			name                sql.NullString
			lat, lng, elevation sql.NullFloat64
		)
		if err := rows.Scan(&s.StationID, &name, &lat, &lng, &elevation); err != nil {
			return nil, err
		}
		s.Name = name.String
		s.Latitude = floatPtr(lat)
		s.Longitude = floatPtr(lng)
		s.Elevation = floatPtr(elevation)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetTemperatureObservations(ctx context.Context, from, to string) ([]types.TemperatureObservation, error) {
	rows, err := r.db.QueryContext(ctx, getTemperatureObservationsSQL, from, to)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, "temperature observations")

	var out []types.TemperatureObservation
	for rows.Next() {
		var o types.TemperatureObservation
		if err := rows.Scan(&o.Date, &o.Value); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetTemperatureStatsFrom(ctx context.Context, from string) (types.TemperatureStats, error) {
	return scanTemperatureStats(r.db.QueryRowContext(ctx, getTemperatureStatsFromSQL, from))
}

func (r *repositoryImpl) GetTemperatureStatsBetween(ctx context.Context, from, to string) (types.TemperatureStats, error) {
	return scanTemperatureStats(r.db.QueryRowContext(ctx, getTemperatureStatsBetweenSQL, from, to))
}

func scanTemperatureStats(row *sql.Row) (types.TemperatureStats, error) {
	var lo, avg, hi sql.NullFloat64
	if err := row.Scan(&lo, &avg, &hi); err != nil {
		return types.TemperatureStats{}, err
	}
	return types.TemperatureStats{
		Min: floatPtr(lo),
		Avg: floatPtr(avg),
		Max: floatPtr(hi),
	}, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func closeRows(rows *sql.Rows, what string) {
	if err := rows.Close(); err != nil {
		slog.Error("close "+what+" rows", "error", err)
	}
}
