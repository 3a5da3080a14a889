package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/seaguard/driftwatch/internal/models"
)

// DriftRepository persists drift simulations. The result collections are
// stored as JSON text.
type DriftRepository struct {
	db *sql.DB
}

// NewDriftRepository creates a new drift repository
func NewDriftRepository(db *sql.DB) *DriftRepository {
	return &DriftRepository{db: db}
}

const driftColumns = `id, fisherman_id, session_id, start_lat, start_lng, simulation_hours, num_paths,
	weather, predicted_points, heatmap_points, drift_paths, search_radius_km, created_at`

// Save inserts a simulation
func (r *DriftRepository) Save(ctx context.Context, sim *models.DriftSimulation) error {
	weather, err := json.Marshal(sim.Weather)
	if err != nil {
		return fmt.Errorf("failed to marshal weather: %w", err)
	}
	predicted, err := json.Marshal(sim.PredictedPoints)
	if err != nil {
		return fmt.Errorf("failed to marshal predicted points: %w", err)
	}
	heatmap, err := json.Marshal(sim.HeatmapPoints)
	if err != nil {
		return fmt.Errorf("failed to marshal heatmap points: %w", err)
	}
	paths, err := json.Marshal(sim.DriftPaths)
	if err != nil {
		return fmt.Errorf("failed to marshal drift paths: %w", err)
	}

	var sessionID sql.NullString
	if sim.SessionID != nil {
		sessionID = sql.NullString{String: *sim.SessionID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO drift_simulations (`+driftColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sim.ID, sim.FishermanID, sessionID, sim.Start.Lat, sim.Start.Lng, sim.SimulationHours, sim.NumPaths,
		string(weather), string(predicted), string(heatmap), string(paths), sim.SearchRadiusKm, toMillis(sim.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert drift simulation: %w", err)
	}
	return nil
}

func scanSimulation(row interface{ Scan(...any) error }) (*models.DriftSimulation, error) {
	var sim models.DriftSimulation
	var sessionID sql.NullString
	var weather, predicted, heatmap, paths string
	var createdAt int64

	err := row.Scan(&sim.ID, &sim.FishermanID, &sessionID, &sim.Start.Lat, &sim.Start.Lng,
		&sim.SimulationHours, &sim.NumPaths, &weather, &predicted, &heatmap, &paths,
		&sim.SearchRadiusKm, &createdAt)
	if err != nil {
		return nil, err
	}

	if sessionID.Valid {
		sim.SessionID = &sessionID.String
	}
	sim.CreatedAt = fromMillis(createdAt)

	if err := json.Unmarshal([]byte(weather), &sim.Weather); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weather: %w", err)
	}
	if err := json.Unmarshal([]byte(predicted), &sim.PredictedPoints); err != nil {
		return nil, fmt.Errorf("failed to unmarshal predicted points: %w", err)
	}
	if err := json.Unmarshal([]byte(heatmap), &sim.HeatmapPoints); err != nil {
		return nil, fmt.Errorf("failed to unmarshal heatmap points: %w", err)
	}
	if err := json.Unmarshal([]byte(paths), &sim.DriftPaths); err != nil {
		return nil, fmt.Errorf("failed to unmarshal drift paths: %w", err)
	}
	return &sim, nil
}

func (r *DriftRepository) getOne(ctx context.Context, query string, args ...any) (*models.DriftSimulation, error) {
	sim, err := scanSimulation(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get drift simulation: %w", err)
	}
	return sim, nil
}

// GetByID retrieves a simulation, or nil if none exists
func (r *DriftRepository) GetByID(ctx context.Context, id string) (*models.DriftSimulation, error) {
	return r.getOne(ctx, `SELECT `+driftColumns+` FROM drift_simulations WHERE id = ?`, id)
}

// GetLatestByFisherman retrieves the authoritative (most recent) simulation, or nil
func (r *DriftRepository) GetLatestByFisherman(ctx context.Context, fishermanID int64) (*models.DriftSimulation, error) {
	return r.getOne(ctx,
		`SELECT `+driftColumns+` FROM drift_simulations
		WHERE fisherman_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1`, fishermanID)
}

// ListBySession retrieves a session's simulations, newest first
func (r *DriftRepository) ListBySession(ctx context.Context, sessionID string) ([]models.DriftSimulation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+driftColumns+` FROM drift_simulations
		WHERE session_id = ?
		ORDER BY created_at DESC, rowid DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query drift simulations: %w", err)
	}
	defer rows.Close()

	sims := []models.DriftSimulation{}
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan drift simulation: %w", err)
		}
		sims = append(sims, *sim)
	}
	return sims, rows.Err()
}
