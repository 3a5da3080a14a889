package weather

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/seaguard/driftwatch/internal/models"
)

// Ranges of synthesized fallback conditions
const (
	FallbackWindMinKmh   = 12.0
	FallbackWindMaxKmh   = 20.0
	FallbackWaveMinM     = 1.0
	FallbackWaveMaxM     = 3.0
	FallbackCurrentMinMs = 0.2
	FallbackCurrentMaxMs = 0.7
)

// FallbackProvider synthesizes plausible conditions when no live source is
// reachable. It never fails.
type FallbackProvider struct{}

// NewFallbackProvider creates a fallback provider
func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

// Name returns the provider name
func (p *FallbackProvider) Name() string {
	return "fallback"
}

// Fetch returns a random sample inside the documented fallback ranges
func (p *FallbackProvider) Fetch(ctx context.Context, lat, lng float64) (models.WeatherSample, error) {
	return models.WeatherSample{
		WindSpeed:        between(FallbackWindMinKmh, FallbackWindMaxKmh),
		WindDirection:    rand.Float64() * 360,
		WaveHeight:       between(FallbackWaveMinM, FallbackWaveMaxM),
		CurrentSpeed:     between(FallbackCurrentMinMs, FallbackCurrentMaxMs),
		CurrentDirection: rand.Float64() * 360,
		Source:           models.WeatherSourceFallback,
		FetchedAt:        time.Now().UTC(),
	}, nil
}

func between(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
