package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"
)

type notificationRepository struct {
	client *firestore.Client
}

func NewNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &notificationRepository{client: client}
}

// Create appends to notifications/{uid}/userNotifications.
func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	path := colNotifications + "/" + n.RecipientUserID + "/" + colUserNotifications
	logger.DocumentCall("add", path, "type", n.Type)

	ref, _, err := r.client.Collection(colNotifications).Doc(n.RecipientUserID).
		Collection(colUserNotifications).Add(ctx, n)
	logger.DocumentResult("add", path, err)
	if err != nil {
		return fmt.Errorf("failed to create notification for %s: %w", n.RecipientUserID, err)
	}
	n.ID = ref.ID
	return nil
}
