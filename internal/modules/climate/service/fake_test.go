package service

import (
	"context"
	"math"

	"climate-server/internal/modules/climate/types"
)

// fakeRepo answers repository queries from an in-memory measurement table.
type fakeRepo struct {
	measurements []types.Measurement
	stations     []types.Station
	err          error

	statsCalls int
}

func (f *fakeRepo) GetOldestDate(ctx context.Context) (string, bool, error) {
	if f.err != nil || len(f.measurements) == 0 {
		return "", false, f.err
	}
	oldest := f.measurements[0].Date
	for _, m := range f.measurements {
		if m.Date < oldest {
			oldest = m.Date
		}
	}
	return oldest, true, nil
}

func (f *fakeRepo) GetLatestDate(ctx context.Context) (string, bool, error) {
	if f.err != nil || len(f.measurements) == 0 {
		return "", false, f.err
	}
	latest := f.measurements[0].Date
	for _, m := range f.measurements {
		if m.Date > latest {
			latest = m.Date
		}
	}
	return latest, true, nil
}

func (f *fakeRepo) GetDates(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := map[string]bool{}
	var out []string
	for _, m := range f.measurements {
		if !seen[m.Date] {
			seen[m.Date] = true
			out = append(out, m.Date)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetPrecipitation(ctx context.Context) ([]types.Precipitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]types.Precipitation, 0, len(f.measurements))
	for _, m := range f.measurements {
		out = append(out, types.Precipitation{Date: m.Date, Value: m.Precipitation})
	}
	return out, nil
}

func (f *fakeRepo) GetStations(ctx context.Context) ([]types.Station, error) {
	return f.stations, f.err
}

func (f *fakeRepo) GetTemperatureObservations(ctx context.Context, from, to string) ([]types.TemperatureObservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []types.TemperatureObservation
	for _, m := range f.measurements {
		if m.Date >= from && m.Date <= to {
			out = append(out, types.TemperatureObservation{Date: m.Date, Value: m.TemperatureObservation})
		}
	}
	return out, nil
}

func (f *fakeRepo) GetTemperatureStatsFrom(ctx context.Context, from string) (types.TemperatureStats, error) {
	return f.aggregate(func(d string) bool { return d >= from })
}

func (f *fakeRepo) GetTemperatureStatsBetween(ctx context.Context, from, to string) (types.TemperatureStats, error) {
	return f.aggregate(func(d string) bool { return d >= from && d <= to })
}

func (f *fakeRepo) aggregate(keep func(string) bool) (types.TemperatureStats, error) {
	f.statsCalls++
	if f.err != nil {
		return types.TemperatureStats{}, f.err
	}
	lo, hi, sum, n := math.Inf(1), math.Inf(-1), 0.0, 0
	for _, m := range f.measurements {
		if !keep(m.Date) {
			continue
		}
		lo = math.Min(lo, m.TemperatureObservation)
		hi = math.Max(hi, m.TemperatureObservation)
		sum += m.TemperatureObservation
		n++
	}
	if n == 0 {
		return types.TemperatureStats{}, nil
	}
	avg := sum / float64(n)
	return types.TemperatureStats{Min: &lo, Avg: &avg, Max: &hi}, nil
}

func ptr(v float64) *float64 { return &v }

func hawaiiFixture() *fakeRepo {
	return &fakeRepo{
		measurements: []types.Measurement{
			{StationID: "USC00519397", Date: "2010-01-01", Precipitation: ptr(0.08), TemperatureObservation: 65},
			{StationID: "USC00519397", Date: "2016-08-21", Precipitation: ptr(0.5), TemperatureObservation: 79},
			{StationID: "USC00519397", Date: "2016-08-22", Precipitation: ptr(0.1), TemperatureObservation: 80},
			{StationID: "USC00519397", Date: "2017-08-23", Precipitation: ptr(0), TemperatureObservation: 81},
			{StationID: "USC00516128", Date: "2017-08-23", Precipitation: ptr(0.45), TemperatureObservation: 76},
		},
		stations: []types.Station{
			{StationID: "USC00519397", Name: "WAIKIKI 717.2, HI US"},
			{StationID: "USC00516128", Name: "MANOA LYON ARBO 785.2, HI US"},
		},
	}
}
