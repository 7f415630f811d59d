package firestoredb

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/repository"
)

type bookedRangeRepository struct {
	client *firestore.Client
}

func NewBookedRangeRepository(client *firestore.Client) repository.BookedRangeRepository {
	return &bookedRangeRepository{client: client}
}

// MarkCompleted merges status=completed into tools/{toolId}/bookedRanges/{rentalId}.
func (r *bookedRangeRepository) MarkCompleted(ctx context.Context, toolID, rentalID string) error {
	_, err := r.client.Collection(colTools).Doc(toolID).Collection(colBookedRanges).Doc(rentalID).
		Set(ctx, map[string]interface{}{
			"status":    string(domain.RentalStatusCompleted),
			"updatedAt": time.Now().UTC(),
		}, firestore.MergeAll)
	return err
}
