package drift

import (
	"math"

	"github.com/seaguard/driftwatch/internal/models"
)

// GridCellsPerDegree sets the heatmap resolution: 0.001° cells, about 111 m
// of latitude
const GridCellsPerDegree = 1000.0

type cellKey struct {
	lat, lng int64
}

func cellKeyFor(p models.Position) cellKey {
	return cellKey{
		lat: int64(math.Round(p.Lat * GridCellsPerDegree)),
		lng: int64(math.Round(p.Lng * GridCellsPerDegree)),
	}
}

// BuildHeatmap bins samples into grid cells and normalizes each cell's count
// by the largest count. Cells are returned in the order they were first hit.
func BuildHeatmap(samples []models.Position) []models.HeatmapCell {
	counts := make(map[cellKey]int)
	var order []cellKey
	maxCount := 0

	for _, p := range samples {
		k := cellKeyFor(p)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
		if counts[k] > maxCount {
			maxCount = counts[k]
		}
	}

	cells := make([]models.HeatmapCell, 0, len(order))
	if maxCount == 0 {
		return cells
	}

	for _, k := range order {
		cells = append(cells, models.HeatmapCell{
			Lat:       float64(k.lat) / GridCellsPerDegree,
			Lng:       float64(k.lng) / GridCellsPerDegree,
			Intensity: float64(counts[k]) / float64(maxCount),
		})
	}
	return cells
}
