package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "userID", n.RecipientUserID, "type", n.Type)

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	query := `INSERT INTO notifications (id, user_id, title, message, type, related_report_id, related_rental_id, related_tool_id, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	logger.DatabaseCall("INSERT", "notifications", "userID", n.RecipientUserID)
	_, err := r.db.ExecContext(ctx, query, n.ID, n.RecipientUserID, n.Title, n.Message, n.Type,
		n.RelatedReportID, n.RelatedRentalID, n.RelatedToolID, n.IsRead, n.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "userID", n.RecipientUserID)
		return fmt.Errorf("failed to create notification: %w", err)
	}
	logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	return nil
}
