package drift

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/seaguard/driftwatch/internal/models"
)

// Search radius bounds
const (
	MinSearchRadiusKm     = 2.0
	MaxSearchRadiusKm     = 50.0
	DefaultSearchRadiusKm = 5.0 // fewer than two cells

	// KmPerDegree is applied to both latitude and longitude spans
	KmPerDegree = 111.0
)

// EstimateRadiusKm derives one circular search radius from the spread of the
// heatmap: half the larger side of the cells' bounding box, clamped to
// [MinSearchRadiusKm, MaxSearchRadiusKm].
func EstimateRadiusKm(cells []models.HeatmapCell) float64 {
	if len(cells) < 2 {
		return DefaultSearchRadiusKm
	}

	bound := orb.Point{cells[0].Lng, cells[0].Lat}.Bound()
	for _, c := range cells[1:] {
		bound = bound.Extend(orb.Point{c.Lng, c.Lat})
	}

	latSpan := bound.Top() - bound.Bottom()
	lngSpan := bound.Right() - bound.Left()
	radius := math.Max(latSpan, lngSpan) * KmPerDegree / 2

	return math.Min(math.Max(radius, MinSearchRadiusKm), MaxSearchRadiusKm)
}
