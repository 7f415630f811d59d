package domain

import "time"

const (
	NotificationTypeDepositReleased  = "deposit_released"
	NotificationTypeDepositPartial   = "deposit_partial"
	NotificationTypeDepositForfeited = "deposit_forfeited"
)

type Notification struct {
	ID              string    `json:"id" firestore:"-"`
	RecipientUserID string    `json:"recipient_user_id" firestore:"-"`
	Title           string    `json:"title" firestore:"title"`
	Message         string    `json:"message" firestore:"message"`
	Type            string    `json:"type" firestore:"type"`
	RelatedReportID string    `json:"related_report_id" firestore:"relatedReportId"`
	RelatedRentalID string    `json:"related_rental_id" firestore:"relatedRentalId"`
	RelatedToolID   string    `json:"related_tool_id,omitempty" firestore:"relatedToolId"`
	IsRead          bool      `json:"is_read" firestore:"isRead"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
}
