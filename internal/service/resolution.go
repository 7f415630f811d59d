package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"toolshare-admin/internal/dispute"
	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
)

// workflowContext carries everything one save needs. It is built by
// prepareResolution from a fresh store snapshot and never outlives the call.
type workflowContext struct {
	admin   *domain.Admin
	report  *domain.Report
	current domain.ReportStatus
	next    domain.ReportStatus
	notes   string
	action  domain.AdminAction
	now     time.Time

	isDeposit    bool
	rentalID     string
	rental       *domain.Rental
	outcome      dispute.Outcome
	partialInput string
	settlement   *dispute.Settlement
	skipReason   string

	punitiveTarget string
	noop           bool
}

func (w *workflowContext) final() bool {
	return w.next.IsTerminal()
}

func (s *reportService) ResolveReport(ctx context.Context, req ResolveRequest) (*ResolveResult, error) {
	logger.EnterMethod("reportService.ResolveReport", "reportID", req.ReportID, "adminUID", req.AdminUID, "nextStatus", req.NextStatus)

	if !s.guard.acquire(req.AdminUID) {
		logger.ExitMethodWithError("reportService.ResolveReport", ErrSaveInProgress)
		return nil, ErrSaveInProgress
	}
	defer s.guard.release(req.AdminUID)

	w, err := s.prepareResolution(ctx, req)
	if err != nil {
		logger.ExitMethodWithError("reportService.ResolveReport", err)
		return nil, err
	}
	if w.noop {
		logger.Info("Report already final, nothing to write", "reportID", w.report.ID, "status", w.current)
		logger.ExitMethod("reportService.ResolveReport", "noop", true)
		return &ResolveResult{ReportID: w.report.ID, Status: w.current, NoOp: true}, nil
	}

	// Writes are issued even if the caller goes away.
	wctx := context.WithoutCancel(ctx)
	result, err := s.commitDecision(wctx, w)
	if err != nil {
		logger.ExitMethodWithError("reportService.ResolveReport", err, "reportID", w.report.ID)
		return result, err
	}

	logger.Info("Report decision saved",
		"reportID", w.report.ID,
		"status", w.next,
		"adminUID", w.admin.UID,
		"depositApplied", result.Settlement != nil,
		"punitiveAction", result.PunitiveAction)
	logger.ExitMethod("reportService.ResolveReport")
	return result, nil
}

// prepareResolution runs every pre-write check. Nothing is written here.
func (s *reportService) prepareResolution(ctx context.Context, req ResolveRequest) (*workflowContext, error) {
	// 1. Admin session
	admin, err := s.requireAdmin(ctx, req.AdminUID)
	if err != nil {
		return nil, err
	}

	// 2. Report and status transition
	report, err := s.loadReport(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}
	w := &workflowContext{
		admin:        admin,
		report:       report,
		current:      domain.NormalizeReportStatus(report.Status),
		notes:        strings.TrimSpace(req.Notes),
		action:       domain.AdminActionNone,
		partialInput: req.PartialAmount,
		isDeposit:    dispute.IsDepositCase(report),
		now:          s.now(),
	}

	next, ok := domain.ParseReportStatus(req.NextStatus)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, req.NextStatus)
	}
	w.next = next
	if !domain.CanTransition(w.current, w.next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, w.current, w.next)
	}
	if w.current.IsTerminal() && w.current == w.next {
		w.noop = true
		return w, nil
	}

	// 3. Linked rental
	w.rentalID, _ = dispute.InferRentalID(report)
	if w.isDeposit && w.final() && w.rentalID == "" {
		return nil, fmt.Errorf("%w: report %s", ErrMissingLink, report.ID)
	}

	// 4. Decision inputs
	action, ok := domain.ParseAdminAction(req.PunitiveAction)
	if !ok {
		return nil, fmt.Errorf("%w: unknown admin action %q", ErrValidation, req.PunitiveAction)
	}
	if w.final() {
		w.action = action
	}
	if w.action != domain.AdminActionNone {
		w.punitiveTarget = dispute.ReportedUserID(report)
		if w.punitiveTarget == "" {
			return nil, fmt.Errorf("%w: report %s names no reported user for %s", ErrValidation, report.ID, w.action)
		}
	}

	if !w.isDeposit || !w.final() {
		return w, nil
	}

	// A rejection releases the deposit whatever the dropdown says.
	selected, err := dispute.ParseOutcome(req.DepositDecision)
	if err != nil && w.next != domain.ReportStatusRejected {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	w.outcome = dispute.EffectiveOutcome(selected, w.next)

	w.rental, err = s.loadRental(ctx, w.rentalID)
	if err != nil {
		return nil, err
	}
	if err := dispute.CheckSettleable(w.rental); err != nil {
		w.skipReason = err.Error()
		logger.Warn("Deposit not settleable, saving report status only",
			"reportID", report.ID, "rentalID", w.rentalID, "reason", w.skipReason)
		return w, nil
	}

	// 5. Settlement
	settlement, err := dispute.Decide(w.outcome, *w.rental.DepositAmount, w.partialInput)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	w.settlement = &settlement
	return w, nil
}

// commitDecision issues the writes: rental, report, notifications, then the
// punitive action. A failed step stops its own chain only.
func (s *reportService) commitDecision(ctx context.Context, w *workflowContext) (*ResolveResult, error) {
	result := &ResolveResult{
		ReportID:          w.report.ID,
		Status:            w.next,
		SettlementSkipped: w.skipReason,
		PunitiveAction:    w.action,
	}

	var errs []error
	if err := s.commitReport(ctx, w, result); err != nil {
		errs = append(errs, err)
	}

	if w.action != domain.AdminActionNone {
		if err := s.applyPunitiveAction(ctx, w.punitiveTarget, w.action, w.admin.UID, w.notes, w.now); err != nil {
			errs = append(errs, err)
		} else {
			result.PunitiveApplied = true
		}
	}

	return result, errors.Join(errs...)
}

func (s *reportService) commitReport(ctx context.Context, w *workflowContext, result *ResolveResult) error {
	// 1. Rental
	if w.settlement != nil {
		settled, err := s.applyDepositResolutionToRental(ctx, w)
		if err != nil {
			return err
		}
		w.settlement = settled
		result.Settlement = settled
	}

	// 2. Report
	if err := s.reportRepo.UpdateDecision(ctx, w.report.ID, buildDecisionUpdate(w)); err != nil {
		if w.settlement != nil {
			logger.Error("Rental settled but report update failed",
				"reportID", w.report.ID, "rentalID", w.rentalID, "error", err)
		}
		return fmt.Errorf("%w: update report %s: %w", ErrStore, w.report.ID, err)
	}

	if w.settlement == nil {
		return nil
	}

	// 3. Notifications
	notes := settlementNotifications(w.report.ID, w.rental, *w.settlement, w.now)
	sent, err := s.notifySettlement(ctx, notes)
	result.NotificationsSent = sent

	// 4. Non-critical follow-ups
	s.afterSettlement(ctx, w.rental, notes)
	return err
}

// applyDepositResolutionToRental re-reads the rental, re-checks that it is
// still settleable and writes the split. It never writes when the check fails.
func (s *reportService) applyDepositResolutionToRental(ctx context.Context, w *workflowContext) (*dispute.Settlement, error) {
	logger.EnterMethod("reportService.applyDepositResolutionToRental", "rentalID", w.rentalID, "outcome", w.outcome)

	rental, err := s.loadRental(ctx, w.rentalID)
	if err != nil {
		logger.ExitMethodWithError("reportService.applyDepositResolutionToRental", err)
		return nil, err
	}
	if err := dispute.CheckSettleable(rental); err != nil {
		err = fmt.Errorf("%w: rental %s: %w", ErrNotSettleable, w.rentalID, err)
		logger.ExitMethodWithError("reportService.applyDepositResolutionToRental", err)
		return nil, err
	}

	settlement, err := dispute.Decide(w.outcome, *rental.DepositAmount, w.partialInput)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrValidation, err)
		logger.ExitMethodWithError("reportService.applyDepositResolutionToRental", err)
		return nil, err
	}

	err = s.rentalRepo.ApplyDepositSettlement(ctx, rental.ID, &domain.DepositSettlementUpdate{
		DepositStatus: settlement.Status,
		ToBorrower:    settlement.Borrower,
		ToOwner:       settlement.Owner,
		ResolvedBy:    w.admin.UID,
		ResolvedAt:    w.now,
		AdminNotes:    w.notes,
	})
	if err != nil {
		err = fmt.Errorf("%w: settle rental %s: %w", ErrStore, rental.ID, err)
		logger.ExitMethodWithError("reportService.applyDepositResolutionToRental", err)
		return nil, err
	}

	w.rental = rental
	logger.ExitMethod("reportService.applyDepositResolutionToRental", "status", settlement.Status)
	return &settlement, nil
}

func buildDecisionUpdate(w *workflowContext) *domain.ReportDecisionUpdate {
	upd := &domain.ReportDecisionUpdate{
		Status:        w.next,
		AdminNotes:    w.notes,
		Decision:      domain.ReportDecision{AdminAction: w.action},
		DecidedBy:     w.admin.UID,
		DecidedAt:     w.now,
		IsDepositCase: w.isDeposit,
	}
	switch w.next {
	case domain.ReportStatusResolved:
		upd.Decision.Result = domain.DecisionResultValid
	case domain.ReportStatusRejected:
		upd.Decision.Result = domain.DecisionResultInvalid
	}

	if w.isDeposit {
		upd.LinkedRentalID = w.rentalID
		if w.settlement != nil {
			upd.DepositDecisionApplied = true
			upd.DepositDecision = w.settlement.Status
			upd.Decision.DepositOutcome = w.settlement.Status
			upd.LinkedRentalFinalStatus = domain.RentalStatusCompleted
		} else if w.rental != nil {
			upd.LinkedRentalFinalStatus = w.rental.Status
		}
	}

	if w.final() {
		at := w.now
		upd.ResolvedAt = &at
		upd.ResolvedBy = w.admin.UID
	}
	return upd
}
