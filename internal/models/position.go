package models

// Position is a latitude/longitude pair in degrees
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DriftPath is one sampled trajectory; index 0 is the start position and
// index h is the position after h simulated hours.
type DriftPath []Position

// HeatmapCell is a 0.001° grid cell with its occupancy normalized to (0,1]
type HeatmapCell struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
}
