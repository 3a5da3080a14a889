package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/seaguard/driftwatch/internal/database"
	"github.com/seaguard/driftwatch/internal/models"
)

// TrackingRepository handles tracking sessions and their position reports
type TrackingRepository struct {
	db *sql.DB
}

// NewTrackingRepository creates a new tracking repository
func NewTrackingRepository(db *sql.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

const sessionColumns = `id, fisherman_id, status, started_at, stopped_at, last_report_at`

func scanSession(row interface{ Scan(...any) error }) (*models.TrackingSession, error) {
	var s models.TrackingSession
	var startedAt int64
	var stoppedAt, lastReportAt sql.NullInt64
	if err := row.Scan(&s.ID, &s.FishermanID, &s.Status, &startedAt, &stoppedAt, &lastReportAt); err != nil {
		return nil, err
	}
	s.StartedAt = fromMillis(startedAt)
	s.StoppedAt = fromNullMillis(stoppedAt)
	s.LastReportAt = fromNullMillis(lastReportAt)
	return &s, nil
}

// CreateSession inserts a new session
func (r *TrackingRepository) CreateSession(ctx context.Context, s *models.TrackingSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tracking_sessions (id, fisherman_id, status, started_at, stopped_at, last_report_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.FishermanID, s.Status, toMillis(s.StartedAt), nullableMillis(s.StoppedAt), nullableMillis(s.LastReportAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert tracking session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID, or nil if none exists
func (r *TrackingRepository) GetSession(ctx context.Context, id string) (*models.TrackingSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM tracking_sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracking session: %w", err)
	}
	return s, nil
}

// GetActiveSession retrieves the fisherman's active or overdue session, or nil
func (r *TrackingRepository) GetActiveSession(ctx context.Context, fishermanID int64) (*models.TrackingSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM tracking_sessions
		WHERE fisherman_id = ? AND status IN (?, ?)
		ORDER BY started_at DESC LIMIT 1`,
		fishermanID, models.SessionActive, models.SessionOverdue)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return s, nil
}

// StopSession marks a session stopped
func (r *TrackingRepository) StopSession(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tracking_sessions SET status = ?, stopped_at = ? WHERE id = ?`,
		models.SessionStopped, toMillis(at), id)
	if err != nil {
		return fmt.Errorf("failed to stop session: %w", err)
	}
	return nil
}

// MarkOverdue flips an active session to overdue if it is still silent since
// before cutoff. It returns false when the session was stopped, already
// marked, or reported in the meantime, so concurrent sweeps act on it once.
func (r *TrackingRepository) MarkOverdue(ctx context.Context, id string, cutoff time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tracking_sessions SET status = ?
		WHERE id = ? AND status = ? AND COALESCE(last_report_at, started_at) < ?`,
		models.SessionOverdue, id, models.SessionActive, toMillis(cutoff))
	if err != nil {
		return false, fmt.Errorf("failed to mark session overdue: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark session overdue: %w", err)
	}
	return n > 0, nil
}

// ReactivateOverdue puts an overdue session back to active so the next sweep
// picks it up again
func (r *TrackingRepository) ReactivateOverdue(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tracking_sessions SET status = ? WHERE id = ? AND status = ?`,
		models.SessionActive, id, models.SessionOverdue)
	if err != nil {
		return fmt.Errorf("failed to reactivate session: %w", err)
	}
	return nil
}

// ListOverdueCandidates retrieves active sessions last seen before cutoff
func (r *TrackingRepository) ListOverdueCandidates(ctx context.Context, cutoff time.Time) ([]models.TrackingSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM tracking_sessions
		WHERE status = ? AND COALESCE(last_report_at, started_at) < ?
		ORDER BY COALESCE(last_report_at, started_at)`,
		models.SessionActive, toMillis(cutoff))
	if err != nil {
		return nil, fmt.Errorf("failed to query stale sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.TrackingSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// AddReport stores a position report and advances the session's last report
// time. A report on an overdue session reactivates it.
func (r *TrackingRepository) AddReport(ctx context.Context, report *models.PositionReport) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO position_reports (session_id, fisherman_id, latitude, longitude, accuracy, speed, heading, reported_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			report.SessionID, report.FishermanID, report.Latitude, report.Longitude,
			report.Accuracy, report.Speed, report.Heading, toMillis(report.ReportedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert position report: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get position report id: %w", err)
		}
		report.ID = id

		_, err = tx.ExecContext(ctx,
			`UPDATE tracking_sessions
			SET last_report_at = MAX(COALESCE(last_report_at, 0), ?),
			    status = CASE WHEN status = ? THEN ? ELSE status END
			WHERE id = ?`,
			toMillis(report.ReportedAt), models.SessionOverdue, models.SessionActive, report.SessionID)
		if err != nil {
			return fmt.Errorf("failed to update session last report: %w", err)
		}
		return nil
	})
}

const reportColumns = `id, session_id, fisherman_id, latitude, longitude, accuracy, speed, heading, reported_at`

func scanReport(row interface{ Scan(...any) error }) (*models.PositionReport, error) {
	var p models.PositionReport
	var reportedAt int64
	if err := row.Scan(&p.ID, &p.SessionID, &p.FishermanID, &p.Latitude, &p.Longitude,
		&p.Accuracy, &p.Speed, &p.Heading, &reportedAt); err != nil {
		return nil, err
	}
	p.ReportedAt = fromMillis(reportedAt)
	return &p, nil
}

// GetLatestReport retrieves the fisherman's most recent report, or nil
func (r *TrackingRepository) GetLatestReport(ctx context.Context, fishermanID int64) (*models.PositionReport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM position_reports
		WHERE fisherman_id = ?
		ORDER BY reported_at DESC, id DESC LIMIT 1`, fishermanID)
	p, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest report: %w", err)
	}
	return p, nil
}

// ListReports retrieves a session's reports, newest first
func (r *TrackingRepository) ListReports(ctx context.Context, sessionID string, limit int) ([]models.PositionReport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM position_reports
		WHERE session_id = ?
		ORDER BY reported_at DESC, id DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query position reports: %w", err)
	}
	defer rows.Close()

	reports := []models.PositionReport{}
	for rows.Next() {
		p, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position report: %w", err)
		}
		reports = append(reports, *p)
	}
	return reports, rows.Err()
}
