//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"flag"
	"testing"
	"time"

	"toolshare-admin/internal/cache"
	"toolshare-admin/internal/config"
	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/repository/postgres"
	"toolshare-admin/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configPath = flag.String("config", "../../../config/config.test.yaml", "path to config file")

func prepareDB(t *testing.T) (*sql.DB, *postgres.Store) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		t.Skipf("no test config: %v", err)
	}

	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err == nil {
			if err = db.Ping(); err == nil {
				break
			}
			db.Close()
		}
		time.Sleep(2 * time.Second)
	}
	require.NoError(t, err, "Failed to connect to database after retries")

	store := postgres.NewStore(db)
	require.NoError(t, store.EnsureSchema(context.Background()))

	for _, table := range []string{"notifications", "booked_ranges", "reports", "rentals", "users", "admins"} {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}
	t.Cleanup(func() { db.Close() })
	return db, store
}

func seedDispute(t *testing.T, db *sql.DB) {
	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO admins (uid, email, name, role, active) VALUES ($1, $2, $3, $4, TRUE)`,
			[]any{"admin-1", "admin@toolshare.example", "Admin", domain.AdminRoleAdmin}},
		{`INSERT INTO users (id, name, email) VALUES ($1, $2, $3), ($4, $5, $6)`,
			[]any{"o1", "Owner", "owner@example.com", "u1", "Borrower", ""}},
		{`INSERT INTO rentals (id, status, tool_id, owner_id, renter_id, deposit_amount_cents) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]any{"rt1", domain.RentalStatusDisputeOpened, "tool-1", "o1", "u1", 10000}},
		{`INSERT INTO booked_ranges (tool_id, rental_id, status) VALUES ($1, $2, $3)`,
			[]any{"tool-1", "rt1", "active"}},
		{`INSERT INTO reports (id, status, issue_type, rental_id, reported_by, reporter_role, reported_user_id) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			[]any{"r1", domain.ReportStatusInReview, "Deposit Dispute", "rt1", "o1", "owner", "u1"}},
	}
	for _, s := range stmts {
		_, err := db.Exec(s.query, s.args...)
		require.NoError(t, err, s.query)
	}
}

// TestResolveDepositDispute_Postgres verification of a full save against a real database.
// Goal: Verify that:
// 1. The rental is completed with the partial split in minor units
// 2. The report records the decision and the linked rental
// 3. Both parties receive a notification and the booked range is closed
func TestResolveDepositDispute_Postgres(t *testing.T) {
	db, store := prepareDB(t)
	seedDispute(t, db)

	ctx := context.Background()
	svc := service.NewReportServiceFromStore(store, cache.NewMemoryCache(time.Minute), service.NewEmailService("", "", ""))

	res, err := svc.ResolveReport(ctx, service.ResolveRequest{
		ReportID:        "r1",
		AdminUID:        "admin-1",
		NextStatus:      "resolved",
		Notes:           "photos show scratches",
		DepositDecision: "partial",
		PartialAmount:   "40",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Settlement)
	assert.Equal(t, 2, res.NotificationsSent)

	rental, err := store.Rentals().GetByID(ctx, "rt1")
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
	require.NotNil(t, rental.DepositFinalAmountToBorrower)
	require.NotNil(t, rental.DepositFinalAmountToOwner)
	assert.Equal(t, int64(4000), rental.DepositFinalAmountToBorrower.Minor())
	assert.Equal(t, int64(6000), rental.DepositFinalAmountToOwner.Minor())
	assert.Equal(t, "admin-1", rental.DepositResolvedBy)

	report, err := store.Reports().GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusResolved, report.Status)
	assert.True(t, report.DepositDecisionApplied)
	assert.Equal(t, "rt1", report.LinkedRentalID)
	assert.Equal(t, "admin-1", report.ResolvedBy)

	var notifications int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE related_report_id = $1`, "r1").Scan(&notifications))
	assert.Equal(t, 2, notifications)

	var rangeStatus string
	require.NoError(t, db.QueryRow(`SELECT status FROM booked_ranges WHERE rental_id = $1`, "rt1").Scan(&rangeStatus))
	assert.Equal(t, "completed", rangeStatus)

	// A second save of the same terminal status writes nothing.
	again, err := svc.ResolveReport(ctx, service.ResolveRequest{ReportID: "r1", AdminUID: "admin-1", NextStatus: "resolved"})
	require.NoError(t, err)
	assert.True(t, again.NoOp)
}
