package models

import "time"

// Tracking session statuses
const (
	SessionActive  = "active"
	SessionStopped = "stopped"
	SessionOverdue = "overdue" // reports stopped while the session was active
)

// TrackingSession is one trip during which a fisherman reports positions
type TrackingSession struct {
	ID           string     `json:"id" db:"id"`
	FishermanID  int64      `json:"fishermanId" db:"fisherman_id"`
	Status       string     `json:"status" db:"status"`
	StartedAt    time.Time  `json:"startedAt" db:"started_at"`
	StoppedAt    *time.Time `json:"stoppedAt,omitempty" db:"stopped_at"`
	LastReportAt *time.Time `json:"lastReportAt,omitempty" db:"last_report_at"`
}

// LastSeen returns the last report time, or the start time if nothing was reported
func (s *TrackingSession) LastSeen() time.Time {
	if s.LastReportAt != nil {
		return *s.LastReportAt
	}
	return s.StartedAt
}

// PositionReport is a single position sent by a fisherman's device
type PositionReport struct {
	ID          int64     `json:"id" db:"id"`
	SessionID   string    `json:"sessionId" db:"session_id"`
	FishermanID int64     `json:"fishermanId" db:"fisherman_id"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	Accuracy    float64   `json:"accuracy,omitempty" db:"accuracy"` // meters
	Speed       float64   `json:"speed,omitempty" db:"speed"`       // m/s
	Heading     float64   `json:"heading,omitempty" db:"heading"`   // degrees
	ReportedAt  time.Time `json:"reportedAt" db:"reported_at"`
}

// Position returns the report's coordinates
func (r *PositionReport) Position() Position {
	return Position{Lat: r.Latitude, Lng: r.Longitude}
}

// PositionReportRequest is the body of POST /sessions/:sessionId/positions
type PositionReportRequest struct {
	Latitude   *float64 `json:"latitude" binding:"required"`
	Longitude  *float64 `json:"longitude" binding:"required"`
	Accuracy   float64  `json:"accuracy"`
	Speed      float64  `json:"speed"`
	Heading    float64  `json:"heading"`
	ReportedAt int64    `json:"reportedAt"` // Unix timestamp in seconds, 0 = now
}

// PositionReportsResponse lists reports of a session
type PositionReportsResponse struct {
	Data  []PositionReport `json:"data"`
	Count int              `json:"count"`
}
