package firestoredb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/money"
	"toolshare-admin/internal/repository"
)

type rentalRepository struct {
	client *firestore.Client
}

func NewRentalRepository(client *firestore.Client) repository.RentalRepository {
	return &rentalRepository{client: client}
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	path := colRentals + "/" + id
	logger.DocumentCall("get", path)

	snap, err := r.client.Collection(colRentals).Doc(id).Get(ctx)
	err = mapError(err)
	logger.DocumentResult("get", path, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get rental %s: %w", id, err)
	}

	return rentalFromData(snap.Ref.ID, snap.Data()), nil
}

func (r *rentalRepository) ApplyDepositSettlement(ctx context.Context, id string, upd *domain.DepositSettlementUpdate) error {
	path := colRentals + "/" + id
	logger.DocumentCall("update", path, "depositStatus", upd.DepositStatus)

	_, err := r.client.Collection(colRentals).Doc(id).Update(ctx, settlementUpdates(upd))
	err = mapError(err)
	logger.DocumentResult("update", path, err)
	if err != nil {
		return fmt.Errorf("failed to settle deposit for rental %s: %w", id, err)
	}
	return nil
}

func settlementUpdates(upd *domain.DepositSettlementUpdate) []firestore.Update {
	return []firestore.Update{
		{Path: "status", Value: string(domain.RentalStatusCompleted)},
		{Path: "depositStatus", Value: string(upd.DepositStatus)},
		{Path: "depositFinalAmountToBorrower", Value: upd.ToBorrower.Major()},
		{Path: "depositFinalAmountToOwner", Value: upd.ToOwner.Major()},
		{Path: "depositResolvedAt", Value: upd.ResolvedAt},
		{Path: "depositResolvedBy", Value: upd.ResolvedBy},
		{Path: "adminNotes", Value: upd.AdminNotes},
		{Path: "updatedAt", Value: upd.ResolvedAt},
		{Path: "statusUpdatedAt", Value: upd.ResolvedAt},
	}
}

// rentalFromData decodes a rental document. Rentals are written by the
// mobile apps, so field types are checked one by one instead of failing the
// whole document.
func rentalFromData(id string, data map[string]interface{}) *domain.Rental {
	rt := &domain.Rental{
		ID:                id,
		Status:            domain.RentalStatus(strings.ToLower(strings.TrimSpace(stringField(data, "status")))),
		ToolID:            stringField(data, "toolId"),
		OwnerID:           stringField(data, "ownerId"),
		RenterID:          stringField(data, "renterId"),
		DepositAmount:     moneyField(data, "depositAmount"),
		DepositStatus:     domain.DepositStatus(stringField(data, "depositStatus")),
		DepositResolvedBy: stringField(data, "depositResolvedBy"),
		AdminNotes:        stringField(data, "adminNotes"),

		DepositFinalAmountToBorrower: moneyField(data, "depositFinalAmountToBorrower"),
		DepositFinalAmountToOwner:    moneyField(data, "depositFinalAmountToOwner"),
	}
	if t, ok := data["depositResolvedAt"].(time.Time); ok {
		rt.DepositResolvedAt = &t
	}
	if t, ok := data["updatedAt"].(time.Time); ok {
		rt.UpdatedAt = t
	}
	return rt
}

func stringField(data map[string]interface{}, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// moneyField returns nil for missing, non-numeric or non-finite values.
// Numeric strings are accepted since older clients stored amounts as text.
func moneyField(data map[string]interface{}, key string) *money.Money {
	var (
		m   money.Money
		err error
	)
	switch v := data[key].(type) {
	case int64:
		m, err = money.OfMajor(float64(v))
	case float64:
		m, err = money.OfMajor(v)
	case string:
		m, err = money.Parse(v)
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return &m
}
