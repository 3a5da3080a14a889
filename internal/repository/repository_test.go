package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/seaguard/driftwatch/internal/database"
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := database.OpenAndMigrate(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func seedFisherman(t *testing.T, conn *sql.DB, name string) *models.Fisherman {
	t.Helper()
	f := &models.Fisherman{Name: name, BoatName: "Kadal Rani", HomePort: "Kasimedu"}
	require.NoError(t, NewFishermanRepository(conn).Create(context.Background(), f))
	return f
}

func seedSession(t *testing.T, conn *sql.DB, id string, fishermanID int64, startedAt time.Time) *models.TrackingSession {
	t.Helper()
	s := &models.TrackingSession{ID: id, FishermanID: fishermanID, Status: models.SessionActive, StartedAt: startedAt}
	require.NoError(t, NewTrackingRepository(conn).CreateSession(context.Background(), s))
	return s
}
