// Package weather supplies the wind and current conditions a drift
// simulation runs on: a live Open-Meteo source, a synthesized fallback for
// when the live source is down, and a proximity cache in front of both.
package weather

import (
	"context"

	"github.com/seaguard/driftwatch/internal/models"
)

// Provider returns the weather sample for a coordinate
type Provider interface {
	Name() string
	Fetch(ctx context.Context, lat, lng float64) (models.WeatherSample, error)
}
