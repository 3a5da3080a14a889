package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/seaguard/driftwatch/internal/models"
)

// FishermanRepository handles database operations for fishermen
type FishermanRepository struct {
	db *sql.DB
}

// NewFishermanRepository creates a new fisherman repository
func NewFishermanRepository(db *sql.DB) *FishermanRepository {
	return &FishermanRepository{db: db}
}

const fishermanColumns = `id, name, phone, boat_name, boat_registration, home_port, created_at`

func scanFisherman(row interface{ Scan(...any) error }) (*models.Fisherman, error) {
	var f models.Fisherman
	var createdAt int64
	if err := row.Scan(&f.ID, &f.Name, &f.Phone, &f.BoatName, &f.BoatRegistration, &f.HomePort, &createdAt); err != nil {
		return nil, err
	}
	f.CreatedAt = fromMillis(createdAt)
	return &f, nil
}

// Create inserts a fisherman and fills in its ID and CreatedAt
func (r *FishermanRepository) Create(ctx context.Context, f *models.Fisherman) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO fishermen (name, phone, boat_name, boat_registration, home_port, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.Name, f.Phone, f.BoatName, f.BoatRegistration, f.HomePort, toMillis(f.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert fisherman: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get fisherman id: %w", err)
	}
	f.ID = id
	return nil
}

// GetByID retrieves a fisherman, or nil if none exists
func (r *FishermanRepository) GetByID(ctx context.Context, id int64) (*models.Fisherman, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+fishermanColumns+` FROM fishermen WHERE id = ?`, id)
	f, err := scanFisherman(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fisherman: %w", err)
	}
	return f, nil
}

// List retrieves fishermen ordered by ID
func (r *FishermanRepository) List(ctx context.Context, limit, offset int) ([]models.Fisherman, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+fishermanColumns+` FROM fishermen ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query fishermen: %w", err)
	}
	defer rows.Close()

	fishermen := []models.Fisherman{}
	for rows.Next() {
		f, err := scanFisherman(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fisherman: %w", err)
		}
		fishermen = append(fishermen, *f)
	}
	return fishermen, rows.Err()
}
