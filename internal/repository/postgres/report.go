package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"
)

const reportColumns = `id, status, issue_type, reason, description, target_type, target_id,
	rental_id, booking_id, transaction_id, booking_ref, tool_id, forum_post_id,
	reported_by, reported_by_name, reporter_role, reported_user_id, target_user_id, offender_user_id,
	admin_notes, decision_result, decision_admin_action, decision_deposit_outcome,
	is_deposit_case, linked_rental_id, deposit_decision_applied, deposit_decision, linked_rental_final_status,
	decided_at, decided_by, resolved_at, resolved_by, created_at, updated_at`

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.Report, error) {
	var (
		rp                      domain.Report
		result, action, outcome string
		decidedAt, resolvedAt   sql.NullTime
	)
	err := row.Scan(&rp.ID, &rp.Status, &rp.IssueType, &rp.Reason, &rp.Description, &rp.TargetType, &rp.TargetID,
		&rp.RentalID, &rp.BookingID, &rp.TransactionID, &rp.BookingRef, &rp.ToolID, &rp.ForumPostID,
		&rp.ReportedBy, &rp.ReportedByName, &rp.ReporterRole, &rp.ReportedUserID, &rp.TargetUserID, &rp.OffenderUserID,
		&rp.AdminNotes, &result, &action, &outcome,
		&rp.IsDepositCase, &rp.LinkedRentalID, &rp.DepositDecisionApplied, &rp.DepositDecision, &rp.LinkedRentalFinalStatus,
		&decidedAt, &rp.DecidedBy, &resolvedAt, &rp.ResolvedBy, &rp.CreatedAt, &rp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if result != "" || action != "" || outcome != "" {
		rp.Decision = &domain.ReportDecision{
			Result:         result,
			AdminAction:    domain.AdminAction(action),
			DepositOutcome: domain.DepositStatus(outcome),
		}
	}
	rp.DecidedAt = timePtr(decidedAt)
	rp.ResolvedAt = timePtr(resolvedAt)
	return &rp, nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	logger.EnterMethod("reportRepository.GetByID", "reportID", id)

	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	logger.DatabaseCall("SELECT", "reports", "reportID", id)
	rp, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethod("reportRepository.GetByID", "reportID", id, "found", false)
		return nil, repository.ErrNotFound
	}
	logger.DatabaseResult("SELECT", 1, err, "reportID", id)
	if err != nil {
		logger.ExitMethodWithError("reportRepository.GetByID", err, "reportID", id)
		return nil, fmt.Errorf("failed to get report %s: %w", id, err)
	}

	logger.ExitMethod("reportRepository.GetByID", "reportID", id)
	return rp, nil
}

func (r *reportRepository) List(ctx context.Context, opts repository.ReportListOptions) ([]domain.Report, error) {
	logger.EnterMethod("reportRepository.List", "limit", opts.Limit)

	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC`
	args := []any{}
	if opts.Limit > 0 {
		query += ` LIMIT $1`
		args = append(args, opts.Limit)
	}

	logger.DatabaseCall("SELECT", "reports", "limit", opts.Limit)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError("reportRepository.List", err)
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			logger.ExitMethodWithError("reportRepository.List", err)
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, *rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	logger.DatabaseResult("SELECT", int64(len(reports)), nil)

	logger.ExitMethod("reportRepository.List", "count", len(reports))
	return reports, nil
}

func (r *reportRepository) UpdateDecision(ctx context.Context, id string, upd *domain.ReportDecisionUpdate) error {
	logger.EnterMethod("reportRepository.UpdateDecision", "reportID", id, "status", upd.Status)

	query := `UPDATE reports SET status=$1, admin_notes=$2,
		decision_result=$3, decision_admin_action=$4, decision_deposit_outcome=$5,
		is_deposit_case=$6, linked_rental_id=$7, deposit_decision_applied=$8, deposit_decision=$9, linked_rental_final_status=$10,
		decided_at=$11, decided_by=$12, resolved_at=$13, resolved_by=$14, updated_at=$15
		WHERE id=$16`

	logger.DatabaseCall("UPDATE", "reports", "reportID", id)
	res, err := r.db.ExecContext(ctx, query, upd.Status, upd.AdminNotes,
		upd.Decision.Result, upd.Decision.AdminAction, upd.Decision.DepositOutcome,
		upd.IsDepositCase, upd.LinkedRentalID, upd.DepositDecisionApplied, upd.DepositDecision, upd.LinkedRentalFinalStatus,
		upd.DecidedAt, upd.DecidedBy, nullTimeOf(upd.ResolvedAt), upd.ResolvedBy, upd.DecidedAt, id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "reportID", id)
		logger.ExitMethodWithError("reportRepository.UpdateDecision", err, "reportID", id)
		return fmt.Errorf("failed to update report %s: %w", id, err)
	}

	n, _ := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, nil, "reportID", id)
	if n == 0 {
		return repository.ErrNotFound
	}

	logger.ExitMethod("reportRepository.UpdateDecision", "reportID", id)
	return nil
}
