package domain

import (
	"time"

	"toolshare-admin/internal/money"
)

type RentalStatus string

const (
	RentalStatusPending       RentalStatus = "pending"
	RentalStatusOngoing       RentalStatus = "ongoing"
	RentalStatusCompleted     RentalStatus = "completed"
	RentalStatusCancelled     RentalStatus = "cancelled"
	RentalStatusDisputeOpened RentalStatus = "dispute_opened"
)

type DepositStatus string

const (
	DepositStatusNone      DepositStatus = ""
	DepositStatusReleased  DepositStatus = "RELEASED"
	DepositStatusPartial   DepositStatus = "PARTIAL"
	DepositStatusForfeited DepositStatus = "FORFEITED"
)

type Rental struct {
	ID       string       `json:"id"`
	Status   RentalStatus `json:"status"`
	ToolID   string       `json:"tool_id"`
	OwnerID  string       `json:"owner_id"`
	RenterID string       `json:"renter_id"`

	// DepositAmount is nil when the stored value is missing or not a
	// finite number.
	DepositAmount *money.Money `json:"deposit_amount,omitempty"`

	DepositStatus                DepositStatus `json:"deposit_status,omitempty"`
	DepositFinalAmountToBorrower *money.Money  `json:"deposit_final_amount_to_borrower,omitempty"`
	DepositFinalAmountToOwner    *money.Money  `json:"deposit_final_amount_to_owner,omitempty"`
	DepositResolvedAt            *time.Time    `json:"deposit_resolved_at,omitempty"`
	DepositResolvedBy            string        `json:"deposit_resolved_by,omitempty"`
	AdminNotes                   string        `json:"admin_notes,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DepositSettlementUpdate moves a disputed rental to completed together with
// its deposit split.
type DepositSettlementUpdate struct {
	DepositStatus DepositStatus
	ToBorrower    money.Money
	ToOwner       money.Money
	ResolvedBy    string
	ResolvedAt    time.Time
	AdminNotes    string
}
