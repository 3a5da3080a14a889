package drift

import (
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/spatial"
	"github.com/seaguard/driftwatch/internal/stats"
)

// Summarize measures the net drift from start to the last predicted point and
// how widely the sampled paths end around it
func Summarize(start models.Position, result models.SimulationResult) models.DriftSummary {
	if len(result.PredictedPoints) == 0 {
		return models.DriftSummary{}
	}

	final := result.PredictedPoints[len(result.PredictedPoints)-1]
	summary := models.DriftSummary{
		DriftDistanceKm: spatial.DistanceKm(start, final),
		DriftBearingDeg: spatial.Bearing(start, final),
		FinalPosition:   &final,
	}

	spread := make([]float64, 0, len(result.DriftPaths))
	for _, path := range result.DriftPaths {
		if len(path) > 1 {
			spread = append(spread, spatial.DistanceKm(final, path[len(path)-1]))
		}
	}
	if len(spread) > 0 {
		p := stats.Percentiles(spread, 50, 90)
		summary.EndpointSpreadP50Km, summary.EndpointSpreadP90Km = p[0], p[1]
	}
	return summary
}
