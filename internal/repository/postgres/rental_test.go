package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/money"
	"toolshare-admin/internal/repository"
	"toolshare-admin/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rentalColumns = []string{"id", "status", "tool_id", "owner_id", "renter_id", "deposit_amount_cents", "deposit_status",
	"deposit_to_borrower_cents", "deposit_to_owner_cents", "deposit_resolved_at", "deposit_resolved_by", "admin_notes", "updated_at"}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalColumns).
			AddRow("r1", "dispute_opened", "t1", "o1", "rt1", int64(10000), "", nil, nil, nil, "", "", time.Now())

		mock.ExpectQuery("(?s)SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs("r1").
			WillReturnRows(rows)

		rental, err := repo.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusDisputeOpened, rental.Status)
		require.NotNil(t, rental.DepositAmount)
		assert.Equal(t, money.FromMinor(10000), *rental.DepositAmount)
		assert.Nil(t, rental.DepositFinalAmountToBorrower)
		assert.Nil(t, rental.DepositResolvedAt)
	})

	t.Run("Missing deposit", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalColumns).
			AddRow("r2", "dispute_opened", "t1", "o1", "rt1", nil, "", nil, nil, nil, "", "", time.Now())

		mock.ExpectQuery("(?s)SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs("r2").
			WillReturnRows(rows)

		rental, err := repo.GetByID(ctx, "r2")
		require.NoError(t, err)
		assert.Nil(t, rental.DepositAmount)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("(?s)SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ApplyDepositSettlement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	upd := &domain.DepositSettlementUpdate{
		DepositStatus: domain.DepositStatusPartial,
		ToBorrower:    money.FromMinor(4000),
		ToOwner:       money.FromMinor(6000),
		ResolvedBy:    "admin-1",
		ResolvedAt:    now,
		AdminNotes:    "split",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals SET").
			WithArgs("completed", "PARTIAL", int64(4000), int64(6000), now, "admin-1", "split", now, now, "r1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.ApplyDepositSettlement(ctx, "r1", upd))
	})

	t.Run("Unknown rental", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.ApplyDepositSettlement(ctx, "nope", upd), repository.ErrNotFound)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals SET").
			WillReturnError(errors.New("connection reset"))

		err := repo.ApplyDepositSettlement(ctx, "r1", upd)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
