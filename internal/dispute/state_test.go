package dispute

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/money"
)

func deposit(minor int64) *money.Money {
	m := money.FromMinor(minor)
	return &m
}

func TestCheckSettleable(t *testing.T) {
	tests := []struct {
		name   string
		rental *domain.Rental
		want   error
	}{
		{"Missing rental", nil, ErrRentalNotFound},
		{"Ongoing", &domain.Rental{Status: domain.RentalStatusOngoing, DepositAmount: deposit(10000)}, ErrRentalNotInDispute},
		{"Already completed", &domain.Rental{Status: domain.RentalStatusCompleted, DepositAmount: deposit(10000)}, ErrRentalNotInDispute},
		{"Missing deposit", &domain.Rental{Status: domain.RentalStatusDisputeOpened}, ErrInvalidDeposit},
		{"Zero deposit", &domain.Rental{Status: domain.RentalStatusDisputeOpened, DepositAmount: deposit(0)}, ErrInvalidDeposit},
		{"Negative deposit", &domain.Rental{Status: domain.RentalStatusDisputeOpened, DepositAmount: deposit(-100)}, ErrInvalidDeposit},
		{"Settleable", &domain.Rental{Status: domain.RentalStatusDisputeOpened, DepositAmount: deposit(10000)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSettleable(tt.rental)
			if tt.want == nil {
				assert.NoError(t, err)
				assert.True(t, CanSettle(tt.rental))
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, CanSettle(tt.rental))
		})
	}
}
