package types

import "encoding/json"

type Measurement struct {
	StationID              string   `json:"station"`
	Date                   string   `json:"date"`
	Precipitation          *float64 `json:"prcp"`
	TemperatureObservation float64  `json:"tobs"`
}

type Station struct {
	StationID string   `json:"station"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Elevation *float64 `json:"elevation"`
}

// Precipitation is one (date, prcp) row of the measurement table.
type Precipitation struct {
	Date  string
	Value *float64
}

// TemperatureObservation is one (date, tobs) row. It encodes as a
// two-element JSON array: ["2017-08-23", 81.0].
type TemperatureObservation struct {
	Date  string
	Value float64
}

func (o TemperatureObservation) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{o.Date, o.Value})
}

// TemperatureStats is the aggregate triple over a filtered row set. Members
// are nil when no row matched. It encodes as [min, avg, max].
type TemperatureStats struct {
	Min *float64
	Avg *float64
	Max *float64
}

func (s TemperatureStats) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]*float64{s.Min, s.Avg, s.Max})
}

// DateSpan is the oldest and latest measurement date in the dataset.
type DateSpan struct {
	Oldest string
	Latest string
}
