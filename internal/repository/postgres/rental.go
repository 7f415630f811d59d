package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/money"
	"toolshare-admin/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func moneyPtr(v sql.NullInt64) *money.Money {
	if !v.Valid {
		return nil
	}
	m := money.FromMinor(v.Int64)
	return &m
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	logger.EnterMethod("rentalRepository.GetByID", "rentalID", id)

	var (
		rt                       domain.Rental
		deposit, borrower, owner sql.NullInt64
		resolvedAt               sql.NullTime
	)
	query := `SELECT id, status, tool_id, owner_id, renter_id, deposit_amount_cents, deposit_status,
		deposit_to_borrower_cents, deposit_to_owner_cents, deposit_resolved_at, deposit_resolved_by, admin_notes, updated_at
		FROM rentals WHERE id = $1`

	logger.DatabaseCall("SELECT", "rentals", "rentalID", id)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.Status, &rt.ToolID, &rt.OwnerID, &rt.RenterID,
		&deposit, &rt.DepositStatus, &borrower, &owner, &resolvedAt, &rt.DepositResolvedBy, &rt.AdminNotes, &rt.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethod("rentalRepository.GetByID", "rentalID", id, "found", false)
		return nil, repository.ErrNotFound
	}
	logger.DatabaseResult("SELECT", 1, err, "rentalID", id)
	if err != nil {
		logger.ExitMethodWithError("rentalRepository.GetByID", err, "rentalID", id)
		return nil, fmt.Errorf("failed to get rental %s: %w", id, err)
	}

	rt.DepositAmount = moneyPtr(deposit)
	rt.DepositFinalAmountToBorrower = moneyPtr(borrower)
	rt.DepositFinalAmountToOwner = moneyPtr(owner)
	rt.DepositResolvedAt = timePtr(resolvedAt)

	logger.ExitMethod("rentalRepository.GetByID", "rentalID", id, "status", rt.Status)
	return &rt, nil
}

func (r *rentalRepository) ApplyDepositSettlement(ctx context.Context, id string, upd *domain.DepositSettlementUpdate) error {
	logger.EnterMethod("rentalRepository.ApplyDepositSettlement", "rentalID", id, "depositStatus", upd.DepositStatus)

	query := `UPDATE rentals SET status=$1, deposit_status=$2, deposit_to_borrower_cents=$3, deposit_to_owner_cents=$4,
		deposit_resolved_at=$5, deposit_resolved_by=$6, admin_notes=$7, status_updated_at=$8, updated_at=$9
		WHERE id=$10`

	logger.DatabaseCall("UPDATE", "rentals", "rentalID", id)
	res, err := r.db.ExecContext(ctx, query, domain.RentalStatusCompleted, upd.DepositStatus,
		upd.ToBorrower.Minor(), upd.ToOwner.Minor(), upd.ResolvedAt, upd.ResolvedBy, upd.AdminNotes,
		upd.ResolvedAt, upd.ResolvedAt, id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "rentalID", id)
		logger.ExitMethodWithError("rentalRepository.ApplyDepositSettlement", err, "rentalID", id)
		return fmt.Errorf("failed to settle deposit for rental %s: %w", id, err)
	}

	n, _ := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, nil, "rentalID", id)
	if n == 0 {
		return repository.ErrNotFound
	}

	logger.ExitMethod("rentalRepository.ApplyDepositSettlement", "rentalID", id)
	return nil
}
