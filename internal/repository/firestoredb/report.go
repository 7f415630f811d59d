package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"
)

type reportRepository struct {
	client *firestore.Client
}

func NewReportRepository(client *firestore.Client) repository.ReportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	path := colReports + "/" + id
	logger.DocumentCall("get", path)

	snap, err := r.client.Collection(colReports).Doc(id).Get(ctx)
	err = mapError(err)
	logger.DocumentResult("get", path, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", id, err)
	}

	var rp domain.Report
	if err := snap.DataTo(&rp); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	rp.ID = snap.Ref.ID
	return &rp, nil
}

func (r *reportRepository) List(ctx context.Context, opts repository.ReportListOptions) ([]domain.Report, error) {
	logger.EnterMethod("reportRepository.List", "limit", opts.Limit)

	q := r.client.Collection(colReports).OrderBy("createdAt", firestore.Desc)
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	logger.DocumentCall("query", colReports, "limit", opts.Limit)
	snaps, err := q.Documents(ctx).GetAll()
	logger.DocumentResult("query", colReports, err, "count", len(snaps))
	if err != nil {
		logger.ExitMethodWithError("reportRepository.List", err)
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]domain.Report, 0, len(snaps))
	for _, snap := range snaps {
		var rp domain.Report
		if err := snap.DataTo(&rp); err != nil {
			logger.Warn("Skipping undecodable report", "reportID", snap.Ref.ID, "error", err)
			continue
		}
		rp.ID = snap.Ref.ID
		reports = append(reports, rp)
	}

	logger.ExitMethod("reportRepository.List", "count", len(reports))
	return reports, nil
}

func (r *reportRepository) UpdateDecision(ctx context.Context, id string, upd *domain.ReportDecisionUpdate) error {
	path := colReports + "/" + id
	logger.DocumentCall("update", path, "status", upd.Status)

	_, err := r.client.Collection(colReports).Doc(id).Update(ctx, reportDecisionUpdates(upd))
	err = mapError(err)
	logger.DocumentResult("update", path, err)
	if err != nil {
		return fmt.Errorf("failed to update report %s: %w", id, err)
	}
	return nil
}

// reportDecisionUpdates lists the field writes for a saved decision.
func reportDecisionUpdates(upd *domain.ReportDecisionUpdate) []firestore.Update {
	decision := map[string]interface{}{
		"adminAction":    string(upd.Decision.AdminAction),
		"depositOutcome": nil,
		"result":         nil,
	}
	if upd.Decision.DepositOutcome != domain.DepositStatusNone {
		decision["depositOutcome"] = string(upd.Decision.DepositOutcome)
	}
	if upd.Decision.Result != "" {
		decision["result"] = upd.Decision.Result
	}

	updates := []firestore.Update{
		{Path: "status", Value: string(upd.Status)},
		{Path: "adminNotes", Value: upd.AdminNotes},
		{Path: "adminDecisionNote", Value: upd.AdminNotes},
		{Path: "decision", Value: decision},
		{Path: "decidedAt", Value: upd.DecidedAt},
		{Path: "decidedBy", Value: upd.DecidedBy},
		{Path: "updatedAt", Value: upd.DecidedAt},
		{Path: "isDepositCase", Value: upd.IsDepositCase},
	}

	if upd.IsDepositCase {
		updates = append(updates,
			firestore.Update{Path: "linkedRentalId", Value: nullableString(upd.LinkedRentalID)},
			firestore.Update{Path: "depositDecisionApplied", Value: upd.DepositDecisionApplied},
			firestore.Update{Path: "depositDecision", Value: nullableString(string(upd.DepositDecision))},
			firestore.Update{Path: "linkedRentalFinalStatus", Value: nullableString(string(upd.LinkedRentalFinalStatus))},
		)
	}

	if upd.ResolvedAt != nil {
		updates = append(updates,
			firestore.Update{Path: "resolvedAt", Value: *upd.ResolvedAt},
			firestore.Update{Path: "resolvedBy", Value: upd.ResolvedBy},
		)
	}
	return updates
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
