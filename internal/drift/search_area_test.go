package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seaguard/driftwatch/internal/models"
)

func TestEstimateRadiusKm_InsufficientCells(t *testing.T) {
	assert.Equal(t, 5.0, EstimateRadiusKm(nil))
	assert.Equal(t, 5.0, EstimateRadiusKm([]models.HeatmapCell{}))
	assert.Equal(t, 5.0, EstimateRadiusKm([]models.HeatmapCell{{Lat: 13, Lng: 80, Intensity: 1}}))
}

func TestEstimateRadiusKm(t *testing.T) {
	tests := []struct {
		name  string
		cells []models.HeatmapCell
		want  float64
	}{
		{
			name:  "tight cluster clamps to minimum",
			cells: []models.HeatmapCell{{Lat: 13.000, Lng: 80.000}, {Lat: 13.001, Lng: 80.002}},
			want:  2,
		},
		{
			name:  "latitude span dominates",
			cells: []models.HeatmapCell{{Lat: 13.0, Lng: 80.0}, {Lat: 12.5, Lng: 80.1}, {Lat: 12.8, Lng: 80.05}},
			want:  0.5 * 111 / 2,
		},
		{
			name:  "longitude span dominates",
			cells: []models.HeatmapCell{{Lat: 13.0, Lng: 80.0}, {Lat: 13.1, Lng: 80.3}},
			want:  0.3 * 111 / 2,
		},
		{
			name:  "wide spread clamps to maximum",
			cells: []models.HeatmapCell{{Lat: 10, Lng: 80}, {Lat: 12, Lng: 81}},
			want:  50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateRadiusKm(tt.cells), 1e-9)
		})
	}
}

func TestEstimateRadiusKm_AlwaysInBounds(t *testing.T) {
	for _, weather := range []models.WeatherSample{
		{},
		chennaiWeather,
		{WindSpeed: 80, WindDirection: 10, CurrentSpeed: 2.5, CurrentDirection: 350},
	} {
		result := NewEngine().Run(chennai, weather, 12, 200)
		r := EstimateRadiusKm(result.HeatmapPoints)
		assert.GreaterOrEqual(t, r, MinSearchRadiusKm)
		assert.LessOrEqual(t, r, MaxSearchRadiusKm)
	}
}
