package models

import "time"

// Weather sample sources
const (
	WeatherSourceLive     = "live"
	WeatherSourceFallback = "fallback"
	WeatherSourceManual   = "manual"
)

// WeatherSample is a snapshot of local conditions used for one simulation run
type WeatherSample struct {
	WindSpeed        float64 `json:"windSpeed"`        // km/h
	WindDirection    float64 `json:"windDirection"`    // degrees, 0=north, clockwise
	WaveHeight       float64 `json:"waveHeight"`       // meters
	CurrentSpeed     float64 `json:"currentSpeed"`     // m/s
	CurrentDirection float64 `json:"currentDirection"` // degrees

	// Metadata, ignored by the drift engine
	Source    string    `json:"source,omitempty"`
	FetchedAt time.Time `json:"fetchedAt,omitempty"`
}
