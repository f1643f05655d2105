package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"climate-server/internal/modules/climate/types"
)

const resultsLabel = "temperature results (Min, Avg, Max [Fahrenheit])"

func startNotFoundMessage(start string, span types.DateSpan) string {
	return fmt.Sprintf("error: %s start date not found in database; please enter date between %s and %s",
		start, span.Oldest, span.Latest)
}

func orderingMessage(start, end string, span types.DateSpan) string {
	return fmt.Sprintf("start date (%s) is greater than end date (%s), please choose a start date less than end date between %s and %s",
		start, end, span.Oldest, span.Latest)
}

// rangeNotFoundMessage reports which of the two bounds is missing. It
// returns "" when both are present.
func rangeNotFoundMessage(start, end string, startOK, endOK bool, span types.DateSpan) string {
	switch {
	case !startOK && !endOK:
		return fmt.Sprintf("error: %s (start date) and %s (end date) not found in database; please enter dates between %s and %s",
			start, end, span.Oldest, span.Latest)
	case !startOK:
		return fmt.Sprintf("error: %s (start date) not found in database; please enter date between %s and %s",
			start, span.Oldest, span.Latest)
	case !endOK:
		return fmt.Sprintf("error: %s (end date) not found in database; please enter date between %s and %s",
			end, span.Oldest, span.Latest)
	}
	return ""
}

func fromText(start, latest string, stats types.TemperatureStats) string {
	return fmt.Sprintf("date range: from %s (start) to %s (latest date), %s: %s",
		start, latest, resultsLabel, formatTriple(stats))
}

func betweenText(start, end string, stats types.TemperatureStats) string {
	return fmt.Sprintf("start date: %s, end date: %s, %s: %s",
		start, end, resultsLabel, formatTriple(stats))
}

func swappedText(start, end string, stats types.TemperatureStats) string {
	return fmt.Sprintf("Your start date %s was larger than your end date %s, so we swapped them ;) Temperature results (Min, Avg, Max [Fahrenheit]): %s",
		start, end, formatTriple(stats))
}

// formatTriple renders stats as a one-row tuple list: [(min, avg, max)].
func formatTriple(s types.TemperatureStats) string {
	return "[(" + formatNumber(s.Min) + ", " + formatNumber(s.Avg) + ", " + formatNumber(s.Max) + ")]"
}

// formatNumber writes the shortest round-trip form of v, keeping a ".0" on
// integral values. A nil value renders as None.
func formatNumber(v *float64) string {
	if v == nil {
		return "None"
	}
	f := *v
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
