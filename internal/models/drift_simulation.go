package models

import "time"

// SimulationResult is the output of one Monte Carlo drift run
type SimulationResult struct {
	PredictedPoints []Position    `json:"predictedPoints"`
	HeatmapPoints   []HeatmapCell `json:"heatmapPoints"`
	DriftPaths      []DriftPath   `json:"driftPaths"`
}

// DriftSimulation is a persisted simulation for a fisherman. A newer
// simulation for the same fisherman supersedes older ones.
type DriftSimulation struct {
	ID              string        `json:"id" db:"id"`
	FishermanID     int64         `json:"fishermanId" db:"fisherman_id"`
	SessionID       *string       `json:"sessionId,omitempty" db:"session_id"`
	Start           Position      `json:"start"`
	SimulationHours int           `json:"simulationHours" db:"simulation_hours"`
	NumPaths        int           `json:"numPaths" db:"num_paths"`
	Weather         WeatherSample `json:"weather" db:"weather"`
	SearchRadiusKm  float64       `json:"searchRadiusKm" db:"search_radius_km"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`

	SimulationResult
}

// DriftSummary condenses a simulation into the numbers shown on an alert
type DriftSummary struct {
	DriftDistanceKm float64   `json:"driftDistanceKm"`
	DriftBearingDeg float64   `json:"driftBearingDeg"`
	FinalPosition   *Position `json:"finalPosition,omitempty"`

	// Distances from FinalPosition to the end of each sampled path
	EndpointSpreadP50Km float64 `json:"endpointSpreadP50Km"`
	EndpointSpreadP90Km float64 `json:"endpointSpreadP90Km"`
}

// DriftRequest is the input of a drift simulation for a fisherman
type DriftRequest struct {
	FishermanID     int64          `json:"-"`
	SessionID       *string        `json:"sessionId,omitempty"`
	Lat             *float64       `json:"lat,omitempty"`
	Lng             *float64       `json:"lng,omitempty"`
	SimulationHours int            `json:"simulationHours,omitempty"`
	NumPaths        int            `json:"numPaths,omitempty"`
	Weather         *WeatherSample `json:"weather,omitempty"`
}

// DriftResponse is returned by the simulation endpoints
type DriftResponse struct {
	Simulation *DriftSimulation `json:"simulation"`
	Summary    DriftSummary     `json:"summary"`
}
