package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaguard/driftwatch/internal/models"
)

func TestSummarize(t *testing.T) {
	result := NewSeededEngine(3).Run(chennai, chennaiWeather, 6, 50)
	s := Summarize(chennai, result)

	require.NotNil(t, s.FinalPosition)
	assert.Equal(t, result.PredictedPoints[5], *s.FinalPosition)
	assert.Greater(t, s.DriftDistanceKm, 0.0)
	// south-southwest
	assert.Greater(t, s.DriftBearingDeg, 180.0)
	assert.Less(t, s.DriftBearingDeg, 225.0)

	assert.Greater(t, s.EndpointSpreadP50Km, 0.0)
	assert.GreaterOrEqual(t, s.EndpointSpreadP90Km, s.EndpointSpreadP50Km)
}

func TestSummarize_SpreadAroundHourlyCentroid(t *testing.T) {
	engine := NewSeededEngine(3)
	engine.HourlyCentroids = true
	s := Summarize(chennai, engine.Run(chennai, chennaiWeather, 6, 100))

	// bounded jitter keeps endpoints close to the hour-6 centroid
	assert.Greater(t, s.EndpointSpreadP90Km, 0.0)
	assert.Less(t, s.EndpointSpreadP90Km, s.DriftDistanceKm/2)
}

func TestSummarize_CalmWaterHasNoSpread(t *testing.T) {
	result := NewSeededEngine(3).Run(chennai, models.WeatherSample{}, 3, 10)
	s := Summarize(chennai, result)

	require.NotNil(t, s.FinalPosition)
	assert.Zero(t, s.DriftDistanceKm)
	assert.Zero(t, s.EndpointSpreadP90Km)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, models.DriftSummary{}, Summarize(chennai, models.SimulationResult{}))
}
