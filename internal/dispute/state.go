package dispute

import (
	"errors"
	"fmt"

	"toolshare-admin/internal/domain"
)

var (
	ErrRentalNotFound     = errors.New("rental not found")
	ErrRentalNotInDispute = errors.New("rental cannot be resolved in current state")
	ErrInvalidDeposit     = errors.New("rental has no valid deposit amount")
)

// CanSettle reports whether a deposit settlement may be written for the
// rental right now.
func CanSettle(r *domain.Rental) bool {
	return CheckSettleable(r) == nil
}

// CheckSettleable is CanSettle with the reason it fails.
func CheckSettleable(r *domain.Rental) error {
	if r == nil {
		return ErrRentalNotFound
	}
	if r.Status != domain.RentalStatusDisputeOpened {
		return fmt.Errorf("%w: status %s", ErrRentalNotInDispute, r.Status)
	}
	if r.DepositAmount == nil || !r.DepositAmount.IsPositive() {
		return ErrInvalidDeposit
	}
	return nil
}
