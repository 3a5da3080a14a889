package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/seaguard/driftwatch/internal/drift"
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/repository"
	"github.com/seaguard/driftwatch/internal/spatial"
	"github.com/seaguard/driftwatch/internal/weather"
)

// Accepted simulation ranges
const (
	MinSimulationHours = 1
	MaxSimulationHours = 12
	MinNumPaths        = 10
	MaxNumPaths        = 200
)

// DriftDefaults fill in a request that leaves hours or paths unset
type DriftDefaults struct {
	NumPaths        int
	SimulationHours int
}

// DriftService runs and stores drift simulations for fishermen
type DriftService struct {
	drifts      *repository.DriftRepository
	fishermen   *repository.FishermanRepository
	tracking    *repository.TrackingRepository
	weather     weather.Provider
	engine      *drift.Engine
	defaults    DriftDefaults
	invalidator StateInvalidator
}

// NewDriftService creates a new drift service. invalidator may be nil.
func NewDriftService(
	drifts *repository.DriftRepository,
	fishermen *repository.FishermanRepository,
	tracking *repository.TrackingRepository,
	provider weather.Provider,
	engine *drift.Engine,
	defaults DriftDefaults,
	invalidator StateInvalidator,
) *DriftService {
	if defaults.NumPaths == 0 {
		defaults.NumPaths = 100
	}
	if defaults.SimulationHours == 0 {
		defaults.SimulationHours = 6
	}
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &DriftService{
		drifts:      drifts,
		fishermen:   fishermen,
		tracking:    tracking,
		weather:     provider,
		engine:      engine,
		defaults:    defaults,
		invalidator: invalidator,
	}
}

// Simulate predicts where a fisherman drifts from their given or last known
// position and stores the result as the fisherman's latest simulation
func (s *DriftService) Simulate(ctx context.Context, req models.DriftRequest) (*models.DriftResponse, error) {
	hours := req.SimulationHours
	if hours == 0 {
		hours = s.defaults.SimulationHours
	}
	if hours < MinSimulationHours || hours > MaxSimulationHours {
		return nil, invalidf("simulationHours must be between %d and %d, got %d", MinSimulationHours, MaxSimulationHours, hours)
	}

	numPaths := req.NumPaths
	if numPaths == 0 {
		numPaths = s.defaults.NumPaths
	}
	if numPaths < MinNumPaths || numPaths > MaxNumPaths {
		return nil, invalidf("numPaths must be between %d and %d, got %d", MinNumPaths, MaxNumPaths, numPaths)
	}

	f, err := s.fishermen.GetByID(ctx, req.FishermanID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, notFoundf("fisherman %d", req.FishermanID)
	}

	sessionID, err := s.resolveSession(ctx, req)
	if err != nil {
		return nil, err
	}

	start, err := s.resolveStart(ctx, req)
	if err != nil {
		return nil, err
	}

	sample, err := s.resolveWeather(ctx, req, start)
	if err != nil {
		return nil, err
	}

	result := s.engine.Run(start, sample, hours, numPaths)

	sim := &models.DriftSimulation{
		ID:               uuid.NewString(),
		FishermanID:      f.ID,
		SessionID:        sessionID,
		Start:            start,
		SimulationHours:  hours,
		NumPaths:         numPaths,
		Weather:          sample,
		SearchRadiusKm:   drift.EstimateRadiusKm(result.HeatmapPoints),
		CreatedAt:        time.Now().UTC(),
		SimulationResult: result,
	}
	if err := s.drifts.Save(ctx, sim); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(f.ID)

	summary := drift.Summarize(start, result)
	log.Printf("[Drift] Simulation %s for fisherman %d: %.2f km at %.0f°, search radius %.1f km (%d paths, %dh, weather %s)",
		sim.ID, f.ID, summary.DriftDistanceKm, summary.DriftBearingDeg, sim.SearchRadiusKm, numPaths, hours, sample.Source)

	return &models.DriftResponse{Simulation: sim, Summary: summary}, nil
}

func (s *DriftService) resolveSession(ctx context.Context, req models.DriftRequest) (*string, error) {
	if req.SessionID == nil {
		active, err := s.tracking.GetActiveSession(ctx, req.FishermanID)
		if err != nil {
			return nil, err
		}
		if active == nil {
			return nil, nil
		}
		return &active.ID, nil
	}

	session, err := s.tracking.GetSession(ctx, *req.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, notFoundf("session %s", *req.SessionID)
	}
	if session.FishermanID != req.FishermanID {
		return nil, fmt.Errorf("%w: session %s belongs to fisherman %d", ErrConflict, session.ID, session.FishermanID)
	}
	return &session.ID, nil
}

func (s *DriftService) resolveStart(ctx context.Context, req models.DriftRequest) (models.Position, error) {
	if req.Lat != nil || req.Lng != nil {
		if req.Lat == nil || req.Lng == nil {
			return models.Position{}, invalidf("lat and lng must be given together")
		}
		if !spatial.ValidCoordinates(*req.Lat, *req.Lng) {
			return models.Position{}, invalidf("coordinates out of range: %f,%f", *req.Lat, *req.Lng)
		}
		return models.Position{Lat: *req.Lat, Lng: *req.Lng}, nil
	}

	last, err := s.tracking.GetLatestReport(ctx, req.FishermanID)
	if err != nil {
		return models.Position{}, err
	}
	if last == nil {
		return models.Position{}, invalidf("fisherman %d has no reported position; lat and lng are required", req.FishermanID)
	}
	return last.Position(), nil
}

func (s *DriftService) resolveWeather(ctx context.Context, req models.DriftRequest, at models.Position) (models.WeatherSample, error) {
	if req.Weather != nil {
		sample := *req.Weather
		if sample.WindSpeed < 0 || sample.CurrentSpeed < 0 || sample.WaveHeight < 0 {
			return models.WeatherSample{}, invalidf("weather speeds and wave height must not be negative")
		}
		if sample.Source == "" {
			sample.Source = models.WeatherSourceManual
		}
		if sample.FetchedAt.IsZero() {
			sample.FetchedAt = time.Now().UTC()
		}
		return sample, nil
	}

	sample, err := s.weather.Fetch(ctx, at.Lat, at.Lng)
	if err != nil {
		return models.WeatherSample{}, fmt.Errorf("failed to fetch weather: %w", err)
	}
	return sample, nil
}

// Latest returns the fisherman's most recent simulation
func (s *DriftService) Latest(ctx context.Context, fishermanID int64) (*models.DriftResponse, error) {
	sim, err := s.drifts.GetLatestByFisherman(ctx, fishermanID)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, notFoundf("no drift simulation for fisherman %d", fishermanID)
	}
	return respond(sim), nil
}

// Get returns a simulation by ID
func (s *DriftService) Get(ctx context.Context, id string) (*models.DriftResponse, error) {
	sim, err := s.drifts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, notFoundf("drift simulation %s", id)
	}
	return respond(sim), nil
}

// History returns a session's simulations, newest first
func (s *DriftService) History(ctx context.Context, sessionID string) ([]models.DriftSimulation, error) {
	session, err := s.tracking.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, notFoundf("session %s", sessionID)
	}
	return s.drifts.ListBySession(ctx, sessionID)
}

func respond(sim *models.DriftSimulation) *models.DriftResponse {
	return &models.DriftResponse{
		Simulation: sim,
		Summary:    drift.Summarize(sim.Start, sim.SimulationResult),
	}
}
