package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/repository"
)

type bookedRangeRepository struct {
	db *sql.DB
}

func NewBookedRangeRepository(db *sql.DB) repository.BookedRangeRepository {
	return &bookedRangeRepository{db: db}
}

func (r *bookedRangeRepository) MarkCompleted(ctx context.Context, toolID, rentalID string) error {
	query := `INSERT INTO booked_ranges (tool_id, rental_id, status, updated_at) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (tool_id, rental_id) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query, toolID, rentalID, domain.RentalStatusCompleted, time.Now().UTC())
	return err
}
