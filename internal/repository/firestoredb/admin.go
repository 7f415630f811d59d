package firestoredb

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/repository"
)

type adminRepository struct {
	client *firestore.Client
}

func NewAdminRepository(client *firestore.Client) repository.AdminRepository {
	return &adminRepository{client: client}
}

func adminFromSnapshot(snap *firestore.DocumentSnapshot) (*domain.Admin, error) {
	var a domain.Admin
	if err := snap.DataTo(&a); err != nil {
		return nil, fmt.Errorf("failed to decode admin %s: %w", snap.Ref.ID, err)
	}
	a.UID = snap.Ref.ID
	a.Role = domain.AdminRole(strings.ToLower(strings.TrimSpace(string(a.Role))))
	return &a, nil
}

func (r *adminRepository) GetByUID(ctx context.Context, uid string) (*domain.Admin, error) {
	snap, err := r.client.Collection(colAdmins).Doc(uid).Get(ctx)
	if err = mapError(err); err != nil {
		return nil, fmt.Errorf("failed to get admin %s: %w", uid, err)
	}
	return adminFromSnapshot(snap)
}

func (r *adminRepository) ListActive(ctx context.Context) ([]domain.Admin, error) {
	snaps, err := r.client.Collection(colAdmins).Where("active", "==", true).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	admins := make([]domain.Admin, 0, len(snaps))
	for _, snap := range snaps {
		a, err := adminFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *a)
	}
	return admins, nil
}
