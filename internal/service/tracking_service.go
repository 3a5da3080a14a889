package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/repository"
	"github.com/seaguard/driftwatch/internal/spatial"
)

const maxReportsPerPage = 1000

// TrackingService manages tracking sessions and position reports
type TrackingService struct {
	tracking    *repository.TrackingRepository
	fishermen   *repository.FishermanRepository
	invalidator StateInvalidator
}

// NewTrackingService creates a new tracking service. invalidator may be nil.
func NewTrackingService(tracking *repository.TrackingRepository, fishermen *repository.FishermanRepository, invalidator StateInvalidator) *TrackingService {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &TrackingService{tracking: tracking, fishermen: fishermen, invalidator: invalidator}
}

func (s *TrackingService) requireFisherman(ctx context.Context, id int64) error {
	f, err := s.fishermen.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return notFoundf("fisherman %d", id)
	}
	return nil
}

// StartSession opens a tracking session. A fisherman has at most one open
// session; starting again returns it.
func (s *TrackingService) StartSession(ctx context.Context, fishermanID int64) (*models.TrackingSession, bool, error) {
	if err := s.requireFisherman(ctx, fishermanID); err != nil {
		return nil, false, err
	}

	existing, err := s.tracking.GetActiveSession(ctx, fishermanID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	session := &models.TrackingSession{
		ID:          uuid.NewString(),
		FishermanID: fishermanID,
		Status:      models.SessionActive,
		StartedAt:   time.Now().UTC(),
	}
	if err := s.tracking.CreateSession(ctx, session); err != nil {
		// a concurrent start won the one-open-session index
		if winner, lookupErr := s.tracking.GetActiveSession(ctx, fishermanID); lookupErr == nil && winner != nil {
			return winner, false, nil
		}
		return nil, false, err
	}
	s.invalidator.Invalidate(fishermanID)

	log.Printf("[Tracking] Session %s started for fisherman %d", session.ID, fishermanID)
	return session, true, nil
}

// GetSession retrieves a session
func (s *TrackingService) GetSession(ctx context.Context, id string) (*models.TrackingSession, error) {
	session, err := s.tracking.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, notFoundf("session %s", id)
	}
	return session, nil
}

// StopSession closes a session. Stopping a stopped session is a no-op.
func (s *TrackingService) StopSession(ctx context.Context, id string) (*models.TrackingSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionStopped {
		return session, nil
	}

	now := time.Now().UTC()
	if err := s.tracking.StopSession(ctx, id, now); err != nil {
		return nil, err
	}
	session.Status = models.SessionStopped
	session.StoppedAt = &now
	s.invalidator.Invalidate(session.FishermanID)

	log.Printf("[Tracking] Session %s stopped", id)
	return session, nil
}

// ReportPosition records a position on an open session
func (s *TrackingService) ReportPosition(ctx context.Context, sessionID string, req models.PositionReportRequest) (*models.PositionReport, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return nil, invalidf("latitude and longitude are required")
	}
	if !spatial.ValidCoordinates(*req.Latitude, *req.Longitude) {
		return nil, invalidf("coordinates out of range: %f,%f", *req.Latitude, *req.Longitude)
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionStopped {
		return nil, invalidf("session %s is stopped", sessionID)
	}

	reportedAt := time.Now().UTC()
	if req.ReportedAt > 0 {
		reportedAt = time.Unix(req.ReportedAt, 0).UTC()
	}

	report := &models.PositionReport{
		SessionID:   sessionID,
		FishermanID: session.FishermanID,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Accuracy:    req.Accuracy,
		Speed:       req.Speed,
		Heading:     req.Heading,
		ReportedAt:  reportedAt,
	}
	if err := s.tracking.AddReport(ctx, report); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(session.FishermanID)

	if session.Status == models.SessionOverdue {
		log.Printf("[Tracking] Session %s reporting again after being overdue", sessionID)
	}
	return report, nil
}

// LatestPosition returns the fisherman's last reported position
func (s *TrackingService) LatestPosition(ctx context.Context, fishermanID int64) (*models.PositionReport, error) {
	if err := s.requireFisherman(ctx, fishermanID); err != nil {
		return nil, err
	}
	report, err := s.tracking.GetLatestReport(ctx, fishermanID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, notFoundf("no position reported by fisherman %d", fishermanID)
	}
	return report, nil
}

// ListReports returns a session's reports, newest first
func (s *TrackingService) ListReports(ctx context.Context, sessionID string, limit int) ([]models.PositionReport, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxReportsPerPage {
		limit = maxReportsPerPage
	}
	return s.tracking.ListReports(ctx, sessionID, limit)
}

// ListOverdueCandidates returns active sessions with no report since cutoff
func (s *TrackingService) ListOverdueCandidates(ctx context.Context, cutoff time.Time) ([]models.TrackingSession, error) {
	return s.tracking.ListOverdueCandidates(ctx, cutoff)
}

// MarkOverdue flags an active session overdue if it has stayed silent since
// before cutoff. It reports false when the session was stopped or reported
// in the meantime.
func (s *TrackingService) MarkOverdue(ctx context.Context, session models.TrackingSession, cutoff time.Time) (bool, error) {
	marked, err := s.tracking.MarkOverdue(ctx, session.ID, cutoff)
	if err != nil {
		return false, err
	}
	if marked {
		s.invalidator.Invalidate(session.FishermanID)
		log.Printf("[Tracking] Session %s overdue, last seen %s", session.ID, session.LastSeen().Format(time.RFC3339))
	}
	return marked, nil
}

// ReactivateOverdue returns an overdue session to active, so a sweep that
// could not finish handling it retries on the next pass
func (s *TrackingService) ReactivateOverdue(ctx context.Context, session models.TrackingSession) error {
	if err := s.tracking.ReactivateOverdue(ctx, session.ID); err != nil {
		return err
	}
	s.invalidator.Invalidate(session.FishermanID)
	return nil
}
