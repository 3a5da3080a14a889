package models

import "time"

// Fisherman is a registered subject whose position is tracked
type Fisherman struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Phone            string    `json:"phone,omitempty" db:"phone"`
	BoatName         string    `json:"boatName,omitempty" db:"boat_name"`
	BoatRegistration string    `json:"boatRegistration,omitempty" db:"boat_registration"`
	HomePort         string    `json:"homePort,omitempty" db:"home_port"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// CreateFishermanRequest is the body of POST /api/v1/fishermen
type CreateFishermanRequest struct {
	Name             string `json:"name" binding:"required"`
	Phone            string `json:"phone"`
	BoatName         string `json:"boatName"`
	BoatRegistration string `json:"boatRegistration"`
	HomePort         string `json:"homePort"`
}

// FishermanState is the cached read model behind GET /fishermen/:id/state
type FishermanState struct {
	Fisherman      *Fisherman       `json:"fisherman"`
	ActiveSession  *TrackingSession `json:"activeSession,omitempty"`
	LastPosition   *PositionReport  `json:"lastPosition,omitempty"`
	LatestDriftID  string           `json:"latestDriftId,omitempty"`
	SearchRadiusKm float64          `json:"searchRadiusKm,omitempty"`
	DriftAt        *time.Time       `json:"driftAt,omitempty"`
}
