package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaguard/driftwatch/internal/models"
)

func TestBuildHeatmap_Empty(t *testing.T) {
	cells := BuildHeatmap(nil)
	assert.NotNil(t, cells)
	assert.Empty(t, cells)
}

func TestBuildHeatmap_Counts(t *testing.T) {
	samples := []models.Position{
		{Lat: 13.08041, Lng: 80.27012}, // cell (13.080, 80.270)
		{Lat: 13.07961, Lng: 80.26951}, // same cell after rounding
		{Lat: 13.08012, Lng: 80.27049}, // same cell
		{Lat: 13.07512, Lng: 80.26501}, // cell (13.075, 80.265)
	}

	cells := BuildHeatmap(samples)
	require.Len(t, cells, 2)

	assert.InDelta(t, 13.080, cells[0].Lat, 1e-9)
	assert.InDelta(t, 80.270, cells[0].Lng, 1e-9)
	assert.Equal(t, 1.0, cells[0].Intensity)

	assert.InDelta(t, 13.075, cells[1].Lat, 1e-9)
	assert.InDelta(t, 80.265, cells[1].Lng, 1e-9)
	assert.InDelta(t, 1.0/3.0, cells[1].Intensity, 1e-12)
}

func TestBuildHeatmap_NegativeCoordinatesRound(t *testing.T) {
	cells := BuildHeatmap([]models.Position{{Lat: -33.86849, Lng: -151.20931}})
	require.Len(t, cells, 1)
	assert.InDelta(t, -33.868, cells[0].Lat, 1e-9)
	assert.InDelta(t, -151.209, cells[0].Lng, 1e-9)
	assert.Equal(t, 1.0, cells[0].Intensity)
}
