package spatial

import (
	"github.com/seaguard/driftwatch/internal/models"
)

// Centroid calculates the arithmetic mean of a set of positions.
// Returns false for an empty set.
func Centroid(points []models.Position) (models.Position, bool) {
	if len(points) == 0 {
		return models.Position{}, false
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return models.Position{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}, true
}
