package service

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seaguard/driftwatch/internal/database"
	"github.com/seaguard/driftwatch/internal/drift"
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/repository"
	"github.com/stretchr/testify/require"
)

type stubWeather struct {
	sample models.WeatherSample
	err    error
	calls  atomic.Int32
}

func (s *stubWeather) Name() string { return "stub" }

func (s *stubWeather) Fetch(ctx context.Context, lat, lng float64) (models.WeatherSample, error) {
	s.calls.Add(1)
	return s.sample, s.err
}

var errWeatherDown = errors.New("weather down")

type fixture struct {
	db        *sql.DB
	weather   *stubWeather
	fishermen *FishermanService
	tracking  *TrackingService
	drift     *DriftService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := database.OpenAndMigrate(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	fishermenRepo := repository.NewFishermanRepository(conn)
	trackingRepo := repository.NewTrackingRepository(conn)
	driftRepo := repository.NewDriftRepository(conn)

	stub := &stubWeather{sample: models.WeatherSample{
		WindSpeed: 20, WindDirection: 180, WaveHeight: 1.5,
		CurrentSpeed: 0.5, CurrentDirection: 200, Source: models.WeatherSourceLive,
	}}

	fishermen := NewFishermanService(fishermenRepo, trackingRepo, driftRepo, 16, time.Hour)
	return &fixture{
		db:        conn,
		weather:   stub,
		fishermen: fishermen,
		tracking:  NewTrackingService(trackingRepo, fishermenRepo, fishermen),
		drift: NewDriftService(driftRepo, fishermenRepo, trackingRepo, stub, drift.NewSeededEngine(42),
			DriftDefaults{NumPaths: 20, SimulationHours: 3}, fishermen),
	}
}

func (fx *fixture) register(t *testing.T, name string) *models.Fisherman {
	t.Helper()
	f, err := fx.fishermen.Register(context.Background(), models.CreateFishermanRequest{Name: name})
	require.NoError(t, err)
	return f
}

func ptr[T any](v T) *T { return &v }
