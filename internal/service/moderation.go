package service

import (
	"context"
	"fmt"
	"time"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
)

var defaultModerationReasons = map[domain.AdminAction]string{
	domain.AdminActionWarn:    "Policy violation",
	domain.AdminActionSuspend: "Suspended due to report",
	domain.AdminActionBan:     "Repeated violations",
}

// moderationReason prefers the admin's notes over the per-action default.
func moderationReason(action domain.AdminAction, notes string) string {
	if notes != "" {
		return notes
	}
	return defaultModerationReasons[action]
}

// applyPunitiveAction moderates the reported user. It is independent of the
// deposit settlement and runs whether or not that succeeded.
func (s *reportService) applyPunitiveAction(ctx context.Context, userID string, action domain.AdminAction, adminUID, notes string, at time.Time) error {
	logger.EnterMethod("reportService.applyPunitiveAction", "userID", userID, "action", action)

	err := s.userRepo.ApplyModeration(ctx, userID, &domain.ModerationAction{
		Action:  action,
		AdminID: adminUID,
		Reason:  moderationReason(action, notes),
		At:      at,
	})
	if err != nil {
		logger.ExitMethodWithError("reportService.applyPunitiveAction", err)
		return fmt.Errorf("%w: %s user %s: %w", ErrStore, action, userID, err)
	}

	logger.ExitMethod("reportService.applyPunitiveAction")
	return nil
}
