// Package dispute classifies reports and computes deposit settlements.
// Everything here is pure; callers do the I/O.
package dispute

import (
	"strings"

	"toolshare-admin/internal/domain"
)

const (
	TargetTypeRental = "rental"
	TargetTypeTool   = "tool"
	TargetTypeForum  = "forum"
	TargetTypeUser   = "user"
)

// rentalLinks lists the report fields that may carry the disputed rental id,
// highest priority first.
var rentalLinks = []struct {
	field string
	get   func(*domain.Report) string
}{
	{"rentalId", func(r *domain.Report) string { return r.RentalID }},
	{"bookingId", func(r *domain.Report) string { return r.BookingID }},
	{"transactionId", func(r *domain.Report) string { return r.TransactionID }},
	{"bookingRef", func(r *domain.Report) string { return r.BookingRef }},
}

// StatusLookup returns the last known status of a rental. ok is false when
// nothing usable is known.
type StatusLookup func(rentalID string) (status domain.RentalStatus, ok bool)

// IsDepositCase reports whether the report's issue type or reason mentions a
// deposit.
func IsDepositCase(r *domain.Report) bool {
	if r == nil {
		return false
	}
	return strings.Contains(strings.ToLower(r.IssueType), "deposit") ||
		strings.Contains(strings.ToLower(r.Reason), "deposit")
}

// InferRentalID resolves the rental a report refers to.
func InferRentalID(r *domain.Report) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, link := range rentalLinks {
		if id := strings.TrimSpace(link.get(r)); id != "" {
			return id, true
		}
	}
	if strings.EqualFold(strings.TrimSpace(r.TargetType), TargetTypeRental) {
		if id := strings.TrimSpace(r.TargetID); id != "" {
			return id, true
		}
	}
	return "", false
}

// IsDisputeCandidate reports whether the report is a deposit case with a
// resolvable rental.
func IsDisputeCandidate(r *domain.Report) bool {
	if !IsDepositCase(r) {
		return false
	}
	_, ok := InferRentalID(r)
	return ok
}

// IsOpenDispute reports whether the report is a candidate whose rental is
// known to be in dispute. Unknown rentals never count.
func IsOpenDispute(r *domain.Report, lookup StatusLookup) bool {
	if !IsDisputeCandidate(r) || lookup == nil {
		return false
	}
	id, _ := InferRentalID(r)
	status, ok := lookup(id)
	return ok && status == domain.RentalStatusDisputeOpened
}

// InferTargetType returns the stored target type, or guesses one from the
// populated fields.
func InferTargetType(r *domain.Report) string {
	if t := strings.ToLower(strings.TrimSpace(r.TargetType)); t != "" {
		return t
	}
	for _, link := range rentalLinks {
		if strings.TrimSpace(link.get(r)) != "" {
			return TargetTypeRental
		}
	}
	if r.ForumPostID != "" {
		return TargetTypeForum
	}
	if r.ReportedUserID != "" {
		return TargetTypeUser
	}
	return TargetTypeTool
}

// InferTargetID returns the most specific id the report points at.
func InferTargetID(r *domain.Report) string {
	candidates := []string{r.TargetID, r.RentalID, r.BookingID, r.TransactionID, r.BookingRef,
		r.ToolID, r.ForumPostID, r.ReportedUserID}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

// ReportedUserID returns the user a punitive action applies to.
func ReportedUserID(r *domain.Report) string {
	for _, c := range []string{r.ReportedUserID, r.TargetUserID, r.OffenderUserID} {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

// NormalizeReporterRole maps legacy role names onto owner and renter.
func NormalizeReporterRole(role string) string {
	switch r := strings.ToLower(strings.TrimSpace(role)); r {
	case "lender":
		return "owner"
	case "borrower":
		return "renter"
	default:
		return r
	}
}
