package drift

import (
	"math/rand/v2"

	"github.com/seaguard/driftwatch/internal/models"
)

// Per-hour perturbation bounds applied around the base weather sample
const (
	WindSpeedVariation        = 0.20 // ±20% of base wind speed
	CurrentSpeedVariation     = 0.15 // ±15% of base current speed
	WindDirectionJitterDeg    = 15.0
	CurrentDirectionJitterDeg = 10.0
)

// Sampler draws single drift paths. It is not safe for concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler drawing from rng
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// uniform returns a value in [-1, 1)
func (s *Sampler) uniform() float64 {
	return s.rng.Float64()*2 - 1
}

// SamplePath produces one path of hours+1 positions starting at start.
// Wind/current speed and direction are redrawn independently every hour.
func (s *Sampler) SamplePath(start models.Position, weather models.WeatherSample, hours int) models.DriftPath {
	if hours < 0 {
		hours = 0
	}

	path := make(models.DriftPath, 0, hours+1)
	path = append(path, start)

	pos := start
	for h := 0; h < hours; h++ {
		windSpeed := weather.WindSpeed + weather.WindSpeed*WindSpeedVariation*s.uniform()
		currentSpeed := weather.CurrentSpeed + weather.CurrentSpeed*CurrentSpeedVariation*s.uniform()
		windDirection := weather.WindDirection + WindDirectionJitterDeg*s.uniform()
		currentDirection := weather.CurrentDirection + CurrentDirectionJitterDeg*s.uniform()

		pos = ComputeDrift(pos, windSpeed, windDirection, currentSpeed, currentDirection, 1)
		path = append(path, pos)
	}

	return path
}
