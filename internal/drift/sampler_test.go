package drift

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaguard/driftwatch/internal/models"
)

var chennaiWeather = models.WeatherSample{
	WindSpeed:        20,
	WindDirection:    180,
	WaveHeight:       1.5,
	CurrentSpeed:     0.5,
	CurrentDirection: 200,
}

func testSampler(seed uint64) *Sampler {
	return NewSampler(rand.New(rand.NewPCG(seed, seed)))
}

func TestSamplePath_Length(t *testing.T) {
	s := testSampler(1)
	for hours := 0; hours <= 12; hours++ {
		path := s.SamplePath(chennai, chennaiWeather, hours)
		require.Len(t, path, hours+1)
		assert.Equal(t, chennai, path[0])
	}
}

func TestSamplePath_NegativeHours(t *testing.T) {
	path := testSampler(1).SamplePath(chennai, chennaiWeather, -3)
	assert.Equal(t, models.DriftPath{chennai}, path)
}

func TestSamplePath_CalmStaysPut(t *testing.T) {
	calm := models.WeatherSample{WindDirection: 45, CurrentDirection: 270, WaveHeight: 2}
	path := testSampler(7).SamplePath(chennai, calm, 6)
	for _, p := range path {
		assert.Equal(t, chennai, p)
	}
}

func TestSamplePath_StepsStayWithinPerturbationBounds(t *testing.T) {
	s := testSampler(99)
	path := s.SamplePath(chennai, chennaiWeather, 12)

	// Slowest and fastest southward single-hour moves the perturbation
	// bounds allow: speeds at their extremes, directions as far from or as
	// close to due south as the jitter permits
	slowest := ComputeDrift(chennai, 20*0.8, 180-15, 0.5*0.85, 200+10, 1)
	fastest := ComputeDrift(chennai, 20*1.2, 180, 0.5*1.15, 200-10, 1)
	minStep := chennai.Lat - slowest.Lat
	maxStep := chennai.Lat - fastest.Lat

	for h := 1; h < len(path); h++ {
		step := path[h-1].Lat - path[h].Lat
		assert.Greater(t, step, 0.0, "hour %d should move south", h)
		assert.LessOrEqual(t, step, maxStep*1.0001, "hour %d moved too far", h)
		assert.GreaterOrEqual(t, step, minStep*0.9999, "hour %d moved too little", h)
	}
}
