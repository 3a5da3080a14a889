package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSimulation(id string, fishermanID int64, sessionID *string, createdAt time.Time) *models.DriftSimulation {
	return &models.DriftSimulation{
		ID:              id,
		FishermanID:     fishermanID,
		SessionID:       sessionID,
		Start:           models.Position{Lat: 13.08, Lng: 80.27},
		SimulationHours: 2,
		NumPaths:        10,
		Weather: models.WeatherSample{
			WindSpeed: 20, WindDirection: 180, WaveHeight: 1.5,
			CurrentSpeed: 0.5, CurrentDirection: 200, Source: models.WeatherSourceManual,
		},
		SearchRadiusKm: 5,
		CreatedAt:      createdAt,
		SimulationResult: models.SimulationResult{
			PredictedPoints: []models.Position{{Lat: 13.07, Lng: 80.27}, {Lat: 13.06, Lng: 80.26}},
			HeatmapPoints:   []models.HeatmapCell{{Lat: 13.07, Lng: 80.27, Intensity: 1}},
			DriftPaths:      []models.DriftPath{{{Lat: 13.07, Lng: 80.27}, {Lat: 13.06, Lng: 80.26}}},
		},
	}
}

func TestDriftRepository_SaveAndGet(t *testing.T) {
	conn := newTestDB(t)
	repo := NewDriftRepository(conn)
	ctx := context.Background()
	f := seedFisherman(t, conn, "Murugan")

	created := time.Now().UTC().Truncate(time.Millisecond)
	sim := sampleSimulation("sim-1", f.ID, nil, created)
	require.NoError(t, repo.Save(ctx, sim))

	got, err := repo.GetByID(ctx, "sim-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.SessionID)
	assert.Equal(t, sim.Start, got.Start)
	assert.Equal(t, sim.PredictedPoints, got.PredictedPoints)
	assert.Equal(t, sim.HeatmapPoints, got.HeatmapPoints)
	assert.Equal(t, sim.DriftPaths, got.DriftPaths)
	assert.Equal(t, sim.Weather.WindSpeed, got.Weather.WindSpeed)
	assert.Equal(t, models.WeatherSourceManual, got.Weather.Source)
	assert.True(t, got.CreatedAt.Equal(created))

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDriftRepository_LatestSupersedes(t *testing.T) {
	conn := newTestDB(t)
	repo := NewDriftRepository(conn)
	ctx := context.Background()
	f := seedFisherman(t, conn, "Murugan")
	seedSession(t, conn, "s-1", f.ID, time.Now().Add(-time.Hour))
	session := "s-1"

	base := time.Now().UTC()
	require.NoError(t, repo.Save(ctx, sampleSimulation("old", f.ID, &session, base.Add(-time.Minute))))
	require.NoError(t, repo.Save(ctx, sampleSimulation("new", f.ID, &session, base)))
	// same timestamp: the later insert wins
	require.NoError(t, repo.Save(ctx, sampleSimulation("newer", f.ID, nil, base)))

	latest, err := repo.GetLatestByFisherman(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "newer", latest.ID)

	history, err := repo.ListBySession(ctx, session)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "new", history[0].ID)
	assert.Equal(t, "old", history[1].ID)
	require.NotNil(t, history[0].SessionID)
	assert.Equal(t, session, *history[0].SessionID)

	none, err := repo.GetLatestByFisherman(ctx, f.ID+100)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDriftRepository_CorruptJSON(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{
		"id", "fisherman_id", "session_id", "start_lat", "start_lng", "simulation_hours", "num_paths",
		"weather", "predicted_points", "heatmap_points", "drift_paths", "search_radius_km", "created_at",
	}).AddRow("sim-1", 1, nil, 13.0, 80.0, 6, 100, "{}", "not json", "[]", "[]", 5.0, int64(0))
	mock.ExpectQuery("SELECT (.+) FROM drift_simulations").WithArgs("sim-1").WillReturnRows(rows)

	_, err = NewDriftRepository(conn).GetByID(context.Background(), "sim-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "predicted points")
	assert.NoError(t, mock.ExpectationsWereMet())
}
