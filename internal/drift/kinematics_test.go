package drift

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seaguard/driftwatch/internal/models"
)

var chennai = models.Position{Lat: 13.0827, Lng: 80.2707}

func TestComputeDrift_Deterministic(t *testing.T) {
	first := ComputeDrift(chennai, 20, 180, 0.5, 200, 3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeDrift(chennai, 20, 180, 0.5, 200, 3))
	}
}

func TestComputeDrift_ZeroDuration(t *testing.T) {
	tests := []struct {
		name                                string
		windKmh, windDir, currentMs, curDir float64
	}{
		{"calm", 0, 0, 0, 0},
		{"strong wind", 60, 45, 0, 0},
		{"strong current", 0, 0, 2.5, 300},
		{"mixed", 20, 180, 0.5, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDrift(chennai, tt.windKmh, tt.windDir, tt.currentMs, tt.curDir, 0)
			assert.Equal(t, chennai, got)
		})
	}
}

func TestComputeDrift_ZeroVelocity(t *testing.T) {
	for _, hours := range []float64{1, 5, 12, 100} {
		for _, dir := range []float64{0, 90, 217, 359} {
			assert.Equal(t, chennai, ComputeDrift(chennai, 0, dir, 0, dir, hours))
		}
	}
}

func TestComputeDrift_NorthCurrent(t *testing.T) {
	// 1 m/s for one hour is 3.6 km due north
	got := ComputeDrift(models.Position{Lat: 0, Lng: 0}, 0, 0, 1, 0, 1)
	wantLat := 3.6 / 6371 * 180 / math.Pi
	assert.InDelta(t, wantLat, got.Lat, 1e-12)
	assert.Equal(t, 0.0, got.Lng)
}

func TestComputeDrift_EastWindLeeway(t *testing.T) {
	// 100 km/h wind blowing toward 90° drifts 3.5% of 27.78 m/s east
	got := ComputeDrift(models.Position{Lat: 0, Lng: 0}, 100, 90, 0, 0, 1)
	eastKm := 100 / 3.6 * LeewayFactor * 3600 / 1000
	assert.InDelta(t, eastKm/6371*180/math.Pi, got.Lng, 1e-12)
	assert.InDelta(t, 0, got.Lat, 1e-12)
}

func TestComputeDrift_LongitudeConvergence(t *testing.T) {
	equator := ComputeDrift(models.Position{Lat: 0, Lng: 10}, 0, 0, 1, 90, 2)
	sixty := ComputeDrift(models.Position{Lat: 60, Lng: 10}, 0, 0, 1, 90, 2)

	// cos(60°) = 0.5, so the same eastward distance spans twice the longitude
	assert.InDelta(t, 2*(equator.Lng-10), sixty.Lng-10, 1e-9)
}

func TestComputeDrift_DurationScalesLinearly(t *testing.T) {
	one := ComputeDrift(chennai, 20, 180, 0.5, 200, 1)
	four := ComputeDrift(chennai, 20, 180, 0.5, 200, 4)
	assert.InDelta(t, 4*(one.Lat-chennai.Lat), four.Lat-chennai.Lat, 1e-9)
	assert.InDelta(t, 4*(one.Lng-chennai.Lng), four.Lng-chennai.Lng, 1e-9)
}
