package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"
)

type userRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.client.Collection(colUsers).Doc(id).Get(ctx)
	if err = mapError(err); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	u.ID = snap.Ref.ID
	return &u, nil
}

func (r *userRepository) ApplyModeration(ctx context.Context, id string, a *domain.ModerationAction) error {
	updates, err := moderationUpdates(a)
	if err != nil {
		return err
	}

	path := colUsers + "/" + id
	logger.DocumentCall("update", path, "action", a.Action)
	_, err = r.client.Collection(colUsers).Doc(id).Update(ctx, updates)
	err = mapError(err)
	logger.DocumentResult("update", path, err)
	if err != nil {
		return fmt.Errorf("failed to apply %s to user %s: %w", a.Action, id, err)
	}
	return nil
}

func moderationUpdates(a *domain.ModerationAction) ([]firestore.Update, error) {
	updates := []firestore.Update{
		{Path: "lastAdminAction", Value: string(a.Action)},
		{Path: "lastAdminActionAt", Value: a.At},
		{Path: "lastAdminActionBy", Value: a.AdminID},
		{Path: "updatedAt", Value: a.At},
	}

	switch a.Action {
	case domain.AdminActionWarn:
		updates = append(updates,
			firestore.Update{Path: "warningCount", Value: firestore.Increment(1)},
			firestore.Update{Path: "lastWarningAt", Value: a.At},
			firestore.Update{Path: "lastWarningReason", Value: a.Reason},
		)
	case domain.AdminActionSuspend:
		updates = append(updates,
			firestore.Update{Path: "isSuspended", Value: true},
			firestore.Update{Path: "suspendedAt", Value: a.At},
			firestore.Update{Path: "suspendedBy", Value: a.AdminID},
			firestore.Update{Path: "suspendReason", Value: a.Reason},
		)
	case domain.AdminActionBan:
		updates = append(updates,
			firestore.Update{Path: "accountStatus", Value: domain.AccountStatusBanned},
			firestore.Update{Path: "bannedAt", Value: a.At},
			firestore.Update{Path: "bannedBy", Value: a.AdminID},
			firestore.Update{Path: "banReason", Value: a.Reason},
		)
	default:
		return nil, fmt.Errorf("unsupported moderation action: %s", a.Action)
	}
	return updates, nil
}
