package drift

import (
	"math"

	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/spatial"
)

// LeewayFactor is the fraction of wind speed that becomes surface drift velocity
const LeewayFactor = 0.035

const degreesPerRadian = 180 / math.Pi

// ComputeDrift advances pos by durationHours of drift under the given wind
// (km/h) and surface current (m/s). Directions are in degrees with 0 = north,
// increasing clockwise. Longitude change is scaled by 1/cos(lat), which
// diverges near the poles.
func ComputeDrift(pos models.Position, windSpeedKmh, windDirectionDeg, currentSpeedMs, currentDirectionDeg, durationHours float64) models.Position {
	windDriftMs := windSpeedKmh / 3.6 * LeewayFactor

	windRad := windDirectionDeg / degreesPerRadian
	currentRad := currentDirectionDeg / degreesPerRadian

	eastMs := windDriftMs*math.Sin(windRad) + currentSpeedMs*math.Sin(currentRad)
	northMs := windDriftMs*math.Cos(windRad) + currentSpeedMs*math.Cos(currentRad)

	seconds := durationHours * 3600
	eastKm := eastMs * seconds / 1000
	northKm := northMs * seconds / 1000

	dLat := northKm / spatial.EarthRadiusKm * degreesPerRadian
	dLng := eastKm / spatial.EarthRadiusKm * degreesPerRadian / math.Cos(pos.Lat/degreesPerRadian)

	return models.Position{
		Lat: pos.Lat + dLat,
		Lng: pos.Lng + dLng,
	}
}
