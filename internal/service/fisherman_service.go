package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/repository"
)

// FishermanService registers fishermen and serves their cached state
type FishermanService struct {
	fishermen *repository.FishermanRepository
	tracking  *repository.TrackingRepository
	drifts    *repository.DriftRepository
	states    *expirable.LRU[int64, *models.FishermanState]

	// gens counts invalidations per fisherman; a load only caches its state
	// if no invalidation happened while it ran
	mu   sync.Mutex
	gens map[int64]uint64
}

// NewFishermanService creates a new fisherman service. State reads are cached
// for stateTTL, up to stateSize fishermen.
func NewFishermanService(
	fishermen *repository.FishermanRepository,
	tracking *repository.TrackingRepository,
	drifts *repository.DriftRepository,
	stateSize int,
	stateTTL time.Duration,
) *FishermanService {
	return &FishermanService{
		fishermen: fishermen,
		tracking:  tracking,
		drifts:    drifts,
		states:    expirable.NewLRU[int64, *models.FishermanState](stateSize, nil, stateTTL),
		gens:      map[int64]uint64{},
	}
}

// Register creates a fisherman
func (s *FishermanService) Register(ctx context.Context, req models.CreateFishermanRequest) (*models.Fisherman, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}

	f := &models.Fisherman{
		Name:             name,
		Phone:            strings.TrimSpace(req.Phone),
		BoatName:         strings.TrimSpace(req.BoatName),
		BoatRegistration: strings.TrimSpace(req.BoatRegistration),
		HomePort:         strings.TrimSpace(req.HomePort),
	}
	if err := s.fishermen.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Get retrieves a fisherman
func (s *FishermanService) Get(ctx context.Context, id int64) (*models.Fisherman, error) {
	f, err := s.fishermen.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, notFoundf("fisherman %d", id)
	}
	return f, nil
}

// List retrieves a page of fishermen
func (s *FishermanService) List(ctx context.Context, limit, offset int) ([]models.Fisherman, error) {
	if offset < 0 {
		offset = 0
	}
	return s.fishermen.List(ctx, clampLimit(limit), offset)
}

// State returns the fisherman's active session, last position and latest
// drift simulation
func (s *FishermanService) State(ctx context.Context, id int64) (*models.FishermanState, error) {
	if state, ok := s.states.Get(id); ok {
		return state, nil
	}
	gen := s.generation(id)

	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	state := &models.FishermanState{Fisherman: f}

	if state.ActiveSession, err = s.tracking.GetActiveSession(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if state.LastPosition, err = s.tracking.GetLatestReport(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to load last position: %w", err)
	}

	sim, err := s.drifts.GetLatestByFisherman(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load drift simulation: %w", err)
	}
	if sim != nil {
		state.LatestDriftID = sim.ID
		state.SearchRadiusKm = sim.SearchRadiusKm
		createdAt := sim.CreatedAt
		state.DriftAt = &createdAt
	}

	s.storeIfCurrent(id, gen, state)
	return state, nil
}

// Invalidate drops the cached state of a fisherman
func (s *FishermanService) Invalidate(fishermanID int64) {
	s.mu.Lock()
	s.gens[fishermanID]++
	s.states.Remove(fishermanID)
	s.mu.Unlock()
}

func (s *FishermanService) generation(id int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[id]
}

// storeIfCurrent caches state loaded at generation gen unless the fisherman
// was invalidated since
func (s *FishermanService) storeIfCurrent(id int64, gen uint64, state *models.FishermanState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[id] != gen {
		return false
	}
	s.states.Add(id, state)
	return true
}
