package entity

import "time"

const (
	WeatherSourceLive      = "live"
	WeatherSourceSimulated = "simulated"
	WeatherSourceFallback  = "fallback"
)

const (
	PermissionPrompt  = "prompt"
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Weather struct {
	Location    string    `json:"location"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    int       `json:"humidity"`
	Pressure    int       `json:"pressure"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	WindSpeed   float64   `json:"wind_speed"`
	Source      string    `json:"source"`
	Coordinates Location  `json:"coordinates"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WeatherState - the latest lookup together with the location permission it ran under.
type WeatherState struct {
	Weather    *Weather `json:"weather"`
	Permission string   `json:"permission"`
	Loading    bool     `json:"loading"`
}
