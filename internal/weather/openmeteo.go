package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/seaguard/driftwatch/internal/models"
)

// Default Open-Meteo endpoints
const (
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	DefaultMarineURL   = "https://marine-api.open-meteo.com/v1/marine"
)

// ErrNoMarineData is returned for coordinates without ocean model coverage (land, lakes)
var ErrNoMarineData = errors.New("no marine data for coordinate")

// OpenMeteoProvider fetches live wind from the forecast API and waves and
// currents from the marine API
type OpenMeteoProvider struct {
	forecastURL string
	marineURL   string
	httpClient  *http.Client
}

// NewOpenMeteoProvider creates a live provider. Empty URLs use the public endpoints.
func NewOpenMeteoProvider(forecastURL, marineURL string, timeout time.Duration) *OpenMeteoProvider {
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
	}
	if marineURL == "" {
		marineURL = DefaultMarineURL
	}
	return &OpenMeteoProvider{
		forecastURL: forecastURL,
		marineURL:   marineURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	Current struct {
		WindSpeed10m     *float64 `json:"wind_speed_10m"`     // km/h
		WindDirection10m *float64 `json:"wind_direction_10m"` // degrees, direction the wind comes from
	} `json:"current"`
}

type marineResponse struct {
	Current struct {
		WaveHeight            *float64 `json:"wave_height"`             // m
		OceanCurrentVelocity  *float64 `json:"ocean_current_velocity"`  // km/h
		OceanCurrentDirection *float64 `json:"ocean_current_direction"` // degrees, direction the current flows to
	} `json:"current"`
}

// Name returns the provider name
func (p *OpenMeteoProvider) Name() string {
	return "open-meteo"
}

// Fetch returns the current conditions at lat/lng
func (p *OpenMeteoProvider) Fetch(ctx context.Context, lat, lng float64) (models.WeatherSample, error) {
	var forecast forecastResponse
	if err := p.getJSON(ctx, p.forecastURL, lat, lng, "wind_speed_10m,wind_direction_10m", &forecast); err != nil {
		return models.WeatherSample{}, fmt.Errorf("failed to fetch wind: %w", err)
	}
	if forecast.Current.WindSpeed10m == nil || forecast.Current.WindDirection10m == nil {
		return models.WeatherSample{}, errors.New("failed to fetch wind: missing current wind fields")
	}

	var marine marineResponse
	if err := p.getJSON(ctx, p.marineURL, lat, lng, "wave_height,ocean_current_velocity,ocean_current_direction", &marine); err != nil {
		return models.WeatherSample{}, fmt.Errorf("failed to fetch marine conditions: %w", err)
	}
	mc := marine.Current
	if mc.OceanCurrentVelocity == nil || mc.OceanCurrentDirection == nil {
		return models.WeatherSample{}, ErrNoMarineData
	}

	sample := models.WeatherSample{
		WindSpeed: *forecast.Current.WindSpeed10m,
		// Meteorological wind direction is where the wind comes from; drift
		// follows where it blows to.
		WindDirection:    normalizeDegrees(*forecast.Current.WindDirection10m + 180),
		CurrentSpeed:     *mc.OceanCurrentVelocity / 3.6,
		CurrentDirection: normalizeDegrees(*mc.OceanCurrentDirection),
		Source:           models.WeatherSourceLive,
		FetchedAt:        time.Now().UTC(),
	}
	if mc.WaveHeight != nil {
		sample.WaveHeight = *mc.WaveHeight
	}
	return sample, nil
}

func (p *OpenMeteoProvider) getJSON(ctx context.Context, endpoint string, lat, lng float64, fields string, target interface{}) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', 4, 64))
	q.Set("current", fields)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func normalizeDegrees(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}
