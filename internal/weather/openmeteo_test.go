package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaguard/driftwatch/internal/models"
)

func newOpenMeteoServer(t *testing.T, forecast, marine string, status int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "13.0827", r.URL.Query().Get("latitude"))
		assert.Equal(t, "80.2707", r.URL.Query().Get("longitude"))
		assert.Equal(t, "wind_speed_10m,wind_direction_10m", r.URL.Query().Get("current"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(forecast))
	})
	mux.HandleFunc("/v1/marine", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(marine))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenMeteoProvider_Fetch(t *testing.T) {
	srv := newOpenMeteoServer(t,
		`{"current":{"time":"2026-10-18T06:00","wind_speed_10m":18.5,"wind_direction_10m":20}}`,
		`{"current":{"wave_height":1.4,"ocean_current_velocity":1.8,"ocean_current_direction":200}}`,
		http.StatusOK)

	p := NewOpenMeteoProvider(srv.URL+"/v1/forecast", srv.URL+"/v1/marine", time.Second)
	sample, err := p.Fetch(context.Background(), 13.0827, 80.2707)
	require.NoError(t, err)

	assert.Equal(t, 18.5, sample.WindSpeed)
	assert.Equal(t, 200.0, sample.WindDirection) // from 20° means blowing toward 200°
	assert.Equal(t, 1.4, sample.WaveHeight)
	assert.InDelta(t, 0.5, sample.CurrentSpeed, 1e-12)
	assert.Equal(t, 200.0, sample.CurrentDirection)
	assert.Equal(t, models.WeatherSourceLive, sample.Source)
	assert.False(t, sample.FetchedAt.IsZero())
}

func TestOpenMeteoProvider_NoMarineCoverage(t *testing.T) {
	srv := newOpenMeteoServer(t,
		`{"current":{"wind_speed_10m":10,"wind_direction_10m":90}}`,
		`{"current":{"wave_height":null,"ocean_current_velocity":null,"ocean_current_direction":null}}`,
		http.StatusOK)

	p := NewOpenMeteoProvider(srv.URL+"/v1/forecast", srv.URL+"/v1/marine", time.Second)
	_, err := p.Fetch(context.Background(), 13.0827, 80.2707)
	assert.ErrorIs(t, err, ErrNoMarineData)
}

func TestOpenMeteoProvider_HTTPError(t *testing.T) {
	srv := newOpenMeteoServer(t, `{"error":true}`, `{"error":true}`, http.StatusInternalServerError)

	p := NewOpenMeteoProvider(srv.URL+"/v1/forecast", srv.URL+"/v1/marine", time.Second)
	_, err := p.Fetch(context.Background(), 13.0827, 80.2707)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch wind")
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 10.0, normalizeDegrees(370))
	assert.Equal(t, 350.0, normalizeDegrees(-10))
	assert.Equal(t, 0.0, normalizeDegrees(360))
}
