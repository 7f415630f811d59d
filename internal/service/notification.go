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

// settlementMessage describes the split from both parties' point of view.
func settlementMessage(s dispute.Settlement) string {
	var msg string
	switch s.Outcome {
	case dispute.OutcomeForfeit:
		msg = fmt.Sprintf("Admin settled the deposit: Owner keeps %s, Borrower gets %s.", s.Owner.Format(), s.Borrower.Format())
	default:
		msg = fmt.Sprintf("Admin settled the deposit: Borrower gets %s, Owner keeps %s.", s.Borrower.Format(), s.Owner.Format())
	}
	return msg + " Rental is now completed."
}

// settlementNotifications builds one notification per party. Parties
// without a user id are skipped.
func settlementNotifications(reportID string, rental *domain.Rental, s dispute.Settlement, at time.Time) []*domain.Notification {
	title := fmt.Sprintf("Deposit dispute resolved (%s)", s.Outcome.Label())
	message := settlementMessage(s)
	notificationType := "deposit_" + strings.ToLower(string(s.Status))

	var out []*domain.Notification
	for _, uid := range []string{rental.OwnerID, rental.RenterID} {
		if uid == "" {
			continue
		}
		out = append(out, &domain.Notification{
			RecipientUserID: uid,
			Title:           title,
			Message:         message,
			Type:            notificationType,
			RelatedReportID: reportID,
			RelatedRentalID: rental.ID,
			RelatedToolID:   rental.ToolID,
			CreatedAt:       at,
		})
	}
	return out
}

func (s *reportService) notifySettlement(ctx context.Context, notes []*domain.Notification) (int, error) {
	var errs []error
	sent := 0
	for _, n := range notes {
		if err := s.noteRepo.Create(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", n.RecipientUserID, err))
			continue
		}
		sent++
	}
	if err := errors.Join(errs...); err != nil {
		return sent, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return sent, nil
}

// afterSettlement runs the non-critical follow-ups. Failures are logged only.
func (s *reportService) afterSettlement(ctx context.Context, rental *domain.Rental, notes []*domain.Notification) {
	if rental.ToolID != "" {
		if err := s.bookedRangeRepo.MarkCompleted(ctx, rental.ToolID, rental.ID); err != nil {
			logger.Warn("Booked range update failed", "toolID", rental.ToolID, "rentalID", rental.ID, "error", err)
		}
	}

	s.statusCache.Set(ctx, rental.ID, domain.RentalStatusCompleted)

	for _, n := range notes {
		user, err := s.userRepo.GetByID(ctx, n.RecipientUserID)
		if err != nil {
			logger.Warn("Settlement email skipped", "userID", n.RecipientUserID, "error", err)
			continue
		}
		if user.Email == "" {
			continue
		}
		if err := s.emailSvc.SendDepositSettlement(ctx, user.Email, user.Name, n); err != nil {
			logger.Warn("Settlement email failed", "userID", n.RecipientUserID, "error", err)
		}
	}
}
