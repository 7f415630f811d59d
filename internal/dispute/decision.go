package dispute

import (
	"errors"
	"fmt"
	"strings"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/money"
)

type Outcome string

const (
	OutcomeRelease Outcome = "release"
	OutcomePartial Outcome = "partial"
	OutcomeForfeit Outcome = "forfeit"
)

var (
	ErrUnknownOutcome          = errors.New("unknown deposit decision")
	ErrNegativeDeposit         = errors.New("deposit amount is negative")
	ErrPartialAmountRequired   = errors.New("partial refund amount is required")
	ErrPartialAmountInvalid    = errors.New("partial refund amount is invalid")
	ErrPartialAmountOutOfRange = errors.New("partial refund must be between 0 and deposit amount")
)

// ParseOutcome reads the admin's deposit decision. Empty means release.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OutcomeRelease, nil
	case OutcomeRelease, OutcomePartial, OutcomeForfeit:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
	}
}

// DepositStatus maps an outcome to the rental's deposit status.
func (o Outcome) DepositStatus() domain.DepositStatus {
	switch o {
	case OutcomePartial:
		return domain.DepositStatusPartial
	case OutcomeForfeit:
		return domain.DepositStatusForfeited
	default:
		return domain.DepositStatusReleased
	}
}

// Label is the short human description used in notification titles.
func (o Outcome) Label() string {
	switch o {
	case OutcomePartial:
		return "Partial deposit settled"
	case OutcomeForfeit:
		return "Deposit forfeited to owner"
	default:
		return "Full deposit returned"
	}
}

// EffectiveOutcome applies the rejection override: a rejected report always
// returns the full deposit to the borrower.
func EffectiveOutcome(selected Outcome, next domain.ReportStatus) Outcome {
	if next == domain.ReportStatusRejected {
		return OutcomeRelease
	}
	return selected
}

// Settlement is the computed split of a deposit.
// Borrower + Owner == Deposit always holds.
type Settlement struct {
	Outcome  Outcome              `json:"outcome"`
	Status   domain.DepositStatus `json:"deposit_status"`
	Deposit  money.Money          `json:"deposit"`
	Borrower money.Money          `json:"to_borrower"`
	Owner    money.Money          `json:"to_owner"`
}

// Decide splits the deposit. partialInput is only read for partial outcomes.
func Decide(outcome Outcome, deposit money.Money, partialInput string) (Settlement, error) {
	if deposit.IsNegative() {
		return Settlement{}, ErrNegativeDeposit
	}

	s := Settlement{Outcome: outcome, Status: outcome.DepositStatus(), Deposit: deposit}
	switch outcome {
	case OutcomeRelease:
		s.Borrower = deposit
	case OutcomeForfeit:
		s.Owner = deposit
	case OutcomePartial:
		amount, err := money.Parse(partialInput)
		if errors.Is(err, money.ErrEmpty) {
			return Settlement{}, ErrPartialAmountRequired
		}
		if err != nil {
			return Settlement{}, fmt.Errorf("%w: %w", ErrPartialAmountInvalid, err)
		}
		if amount.IsNegative() || amount > deposit {
			return Settlement{}, fmt.Errorf("%w (%s)", ErrPartialAmountOutOfRange, deposit.Format())
		}
		s.Borrower = amount
		s.Owner = deposit.Sub(amount)
	default:
		return Settlement{}, fmt.Errorf("%w: %q", ErrUnknownOutcome, outcome)
	}
	return s, nil
}

// Summary is the one-line hint shown to admins before they save.
func (s Settlement) Summary() string {
	switch s.Outcome {
	case OutcomeRelease:
		return fmt.Sprintf("Return %s to borrower. Owner keeps %s.", s.Borrower.Format(), s.Owner.Format())
	case OutcomeForfeit:
		return fmt.Sprintf("Borrower gets %s. Owner keeps %s.", s.Borrower.Format(), s.Owner.Format())
	default:
		return fmt.Sprintf("Borrower gets %s, Owner keeps %s.", s.Borrower.Format(), s.Owner.Format())
	}
}
