package entity

import (
	"maps"
	"time"
)

type ChannelSpec struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Initial  float64 `json:"initial"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	MaxDelta float64 `json:"max_delta"`
	Integer  bool    `json:"integer"`
}

func (that ChannelSpec) Clamp(value float64) float64 {
	return min(max(value, that.Min), that.Max)
}

type ReadingSet struct {
	Values    map[string]float64 `json:"values"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (that ReadingSet) Clone() ReadingSet {
	return ReadingSet{
		Values:    maps.Clone(that.Values),
		UpdatedAt: that.UpdatedAt,
	}
}

// Dashboard - everything the shell renders in one read.
type Dashboard struct {
	Game          Snapshot       `json:"game"`
	Telemetry     ReadingSet     `json:"telemetry"`
	Notifications []Notification `json:"notifications"`
	Weather       WeatherState   `json:"weather"`
}
