package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/types"
)

const dateLayout = "2006-01-02"

// ErrEmptyDataset is returned when the measurement table has no dated rows.
var ErrEmptyDataset = errors.New("measurement table is empty")

// DateSet is the set of distinct measurement dates.
type DateSet map[string]struct{}

func (s DateSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Resolver answers questions about the date bounds of the dataset.
type Resolver struct {
	repository repository.ClimateRepository
}

func NewResolver(repository repository.ClimateRepository) *Resolver {
	return &Resolver{repository: repository}
}

func (r *Resolver) MinDate(ctx context.Context) (string, error) {
	d, ok, err := r.repository.GetOldestDate(ctx)
	if err != nil {
		return "", fmt.Errorf("oldest date: %w", err)
	}
	if !ok {
		return "", ErrEmptyDataset
	}
	return d, nil
}

func (r *Resolver) MaxDate(ctx context.Context) (string, error) {
	d, ok, err := r.repository.GetLatestDate(ctx)
	if err != nil {
		return "", fmt.Errorf("latest date: %w", err)
	}
	if !ok {
		return "", ErrEmptyDataset
	}
	return d, nil
}

func (r *Resolver) Span(ctx context.Context) (types.DateSpan, error) {
	oldest, err := r.MinDate(ctx)
	if err != nil {
		return types.DateSpan{}, err
	}
	latest, err := r.MaxDate(ctx)
	if err != nil {
		return types.DateSpan{}, err
	}
	return types.DateSpan{Oldest: oldest, Latest: latest}, nil
}

// TrailingYearWindow returns the inclusive window that ends at the latest
// date and starts one year and one day earlier.
func (r *Resolver) TrailingYearWindow(ctx context.Context) (start, end string, err error) {
	end, err = r.MaxDate(ctx)
	if err != nil {
		return "", "", err
	}
	start, err = yearAndDayBefore(end)
	if err != nil {
		return "", "", fmt.Errorf("trailing year window: %w", err)
	}
	return start, end, nil
}

func (r *Resolver) AllDates(ctx context.Context) (DateSet, error) {
	dates, err := r.repository.GetDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("all dates: %w", err)
	}
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set, nil
}

// yearAndDayBefore subtracts one calendar year, clamping the day to the end
// of the month, then one day.
func yearAndDayBefore(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", err
	}
	year, month, day := t.Year()-1, t.Month(), t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Format(dateLayout), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
