package service

import (
	"context"
	"fmt"
	"log/slog"

	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/types"
)

type Service struct {
	repository repository.ClimateRepository
	resolver   *Resolver
	logger     *slog.Logger
}

func NewService(repository repository.ClimateRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repository: repository,
		resolver:   NewResolver(repository),
		logger:     logger,
	}
}

func (s *Service) Span(ctx context.Context) (types.DateSpan, error) {
	return s.resolver.Span(ctx)
}

// Precipitation maps each date to its precipitation. When several stations
// report the same date, the row read last wins.
func (s *Service) Precipitation(ctx context.Context) (map[string]*float64, error) {
	rows, err := s.repository.GetPrecipitation(ctx)
	if err != nil {
		return nil, fmt.Errorf("precipitation: %w", err)
	}
	out := make(map[string]*float64, len(rows))
	for _, row := range rows {
		out[row.Date] = row.Value
	}
	if collapsed := len(rows) - len(out); collapsed > 0 {
		s.logger.DebugContext(ctx, "precipitation rows collapsed by date",
			"rows", len(rows),
			"dates", len(out),
			"collapsed", collapsed,
		)
	}
	return out, nil
}

func (s *Service) StationIDs(ctx context.Context) ([]string, error) {
	stations, err := s.repository.GetStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("stations: %w", err)
	}
	ids := make([]string, 0, len(stations))
	for _, st := range stations {
		ids = append(ids, st.StationID)
	}
	return ids, nil
}

func (s *Service) TrailingYearObservations(ctx context.Context) ([]types.TemperatureObservation, error) {
	start, end, err := s.resolver.TrailingYearWindow(ctx)
	if err != nil {
		return nil, err
	}
	obs, err := s.repository.GetTemperatureObservations(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("temperature observations %s..%s: %w", start, end, err)
	}
	if obs == nil {
		obs = []types.TemperatureObservation{}
	}
	return obs, nil
}

// StatsFrom aggregates every observation on or after start. start must be a
// date present in the dataset.
func (s *Service) StatsFrom(ctx context.Context, start string) (Result[types.TemperatureStats], error) {
	stats, msg, err := s.statsFrom(ctx, start)
	if err != nil {
		return Result[types.TemperatureStats]{}, err
	}
	if msg != "" {
		return Fail[types.TemperatureStats](msg), nil
	}
	return Ok(stats), nil
}

func (s *Service) StatsFromText(ctx context.Context, start string) (Result[string], error) {
	stats, msg, err := s.statsFrom(ctx, start)
	if err != nil {
		return Result[string]{}, err
	}
	if msg != "" {
		return Fail[string](msg), nil
	}
	latest, err := s.resolver.MaxDate(ctx)
	if err != nil {
		return Result[string]{}, err
	}
	return Ok(fromText(start, latest, stats)), nil
}

// StatsBetween aggregates observations in [start, end]. A reversed range is
// reported without querying.
func (s *Service) StatsBetween(ctx context.Context, start, end string) (Result[types.TemperatureStats], error) {
	if start > end {
		span, err := s.resolver.Span(ctx)
		if err != nil {
			return Result[types.TemperatureStats]{}, err
		}
		return Fail[types.TemperatureStats](orderingMessage(start, end, span)), nil
	}
	stats, msg, err := s.statsBetween(ctx, start, end)
	if err != nil {
		return Result[types.TemperatureStats]{}, err
	}
	if msg != "" {
		return Fail[types.TemperatureStats](msg), nil
	}
	return Ok(stats), nil
}

// StatsBetweenText is StatsBetween rendered as prose. A reversed range is
// swapped and queried as given, without checking either date.
func (s *Service) StatsBetweenText(ctx context.Context, start, end string) (Result[string], error) {
	if start > end {
		stats, err := s.repository.GetTemperatureStatsBetween(ctx, end, start)
		if err != nil {
			return Result[string]{}, fmt.Errorf("temperature stats %s..%s: %w", end, start, err)
		}
		return Ok(swappedText(start, end, stats)), nil
	}
	stats, msg, err := s.statsBetween(ctx, start, end)
	if err != nil {
		return Result[string]{}, err
	}
	if msg != "" {
		return Fail[string](msg), nil
	}
	return Ok(betweenText(start, end, stats)), nil
}

func (s *Service) statsFrom(ctx context.Context, start string) (types.TemperatureStats, string, error) {
	dates, err := s.resolver.AllDates(ctx)
	if err != nil {
		return types.TemperatureStats{}, "", err
	}
	if !dates.Has(start) {
		span, err := s.resolver.Span(ctx)
		if err != nil {
			return types.TemperatureStats{}, "", err
		}
		return types.TemperatureStats{}, startNotFoundMessage(start, span), nil
	}
	stats, err := s.repository.GetTemperatureStatsFrom(ctx, start)
	if err != nil {
		return types.TemperatureStats{}, "", fmt.Errorf("temperature stats from %s: %w", start, err)
	}
	return stats, "", nil
}

func (s *Service) statsBetween(ctx context.Context, start, end string) (types.TemperatureStats, string, error) {
	dates, err := s.resolver.AllDates(ctx)
	if err != nil {
		return types.TemperatureStats{}, "", err
	}
	startOK, endOK := dates.Has(start), dates.Has(end)
	if !startOK || !endOK {
		span, err := s.resolver.Span(ctx)
		if err != nil {
			return types.TemperatureStats{}, "", err
		}
		return types.TemperatureStats{}, rangeNotFoundMessage(start, end, startOK, endOK, span), nil
	}
	stats, err := s.repository.GetTemperatureStatsBetween(ctx, start, end)
	if err != nil {
		return types.TemperatureStats{}, "", fmt.Errorf("temperature stats %s..%s: %w", start, end, err)
	}
	return stats, "", nil
}
