package dispute

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"toolshare-admin/internal/domain"
)

func TestIsDepositCase(t *testing.T) {
	tests := []struct {
		name   string
		report *domain.Report
		want   bool
	}{
		{"Issue type", &domain.Report{IssueType: "Deposit_Dispute"}, true},
		{"Reason only", &domain.Report{Reason: "deposit not refunded"}, true},
		{"Issue type wins over unrelated reason", &domain.Report{IssueType: "damage", Reason: "DEPOSIT held"}, true},
		{"Unrelated", &domain.Report{IssueType: "damage", Reason: "broken drill"}, false},
		{"Nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDepositCase(tt.report))
		})
	}
}

func TestInferRentalID(t *testing.T) {
	tests := []struct {
		name   string
		report *domain.Report
		want   string
		ok     bool
	}{
		{"Rental id first", &domain.Report{RentalID: "r1", BookingID: "b1"}, "r1", true},
		{"Booking id", &domain.Report{BookingID: "b1", TransactionID: "t1"}, "b1", true},
		{"Transaction id", &domain.Report{TransactionID: "t1", BookingRef: "ref"}, "t1", true},
		{"Booking ref", &domain.Report{BookingRef: "ref"}, "ref", true},
		{"Blank links skipped", &domain.Report{RentalID: "  ", BookingRef: "ref"}, "ref", true},
		{"Rental target fallback", &domain.Report{TargetType: "Rental", TargetID: "r9"}, "r9", true},
		{"Tool target ignored", &domain.Report{TargetType: "tool", TargetID: "t9"}, "", false},
		{"Nothing", &domain.Report{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := InferRentalID(tt.report)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestIsDisputeCandidate(t *testing.T) {
	assert.True(t, IsDisputeCandidate(&domain.Report{IssueType: "deposit_dispute", RentalID: "r1"}))
	assert.True(t, IsDisputeCandidate(&domain.Report{Reason: "deposit not refunded", BookingID: "b1"}))
	assert.False(t, IsDisputeCandidate(&domain.Report{Reason: "deposit not refunded"}))
	assert.False(t, IsDisputeCandidate(&domain.Report{IssueType: "damage", RentalID: "r1"}))
}

func TestIsOpenDispute(t *testing.T) {
	report := &domain.Report{IssueType: "deposit_dispute", RentalID: "r1"}
	known := map[string]domain.RentalStatus{"r1": domain.RentalStatusDisputeOpened, "r2": domain.RentalStatusCompleted}
	lookup := func(id string) (domain.RentalStatus, bool) {
		st, ok := known[id]
		return st, ok
	}

	assert.True(t, IsOpenDispute(report, lookup))
	assert.False(t, IsOpenDispute(&domain.Report{IssueType: "deposit", RentalID: "r2"}, lookup))
	assert.False(t, IsOpenDispute(&domain.Report{IssueType: "deposit", RentalID: "unknown"}, lookup))
	assert.False(t, IsOpenDispute(report, nil))
	assert.False(t, IsOpenDispute(&domain.Report{IssueType: "damage", RentalID: "r1"}, lookup))
}

func TestInferTarget(t *testing.T) {
	assert.Equal(t, "rental", InferTargetType(&domain.Report{BookingID: "b1"}))
	assert.Equal(t, "forum", InferTargetType(&domain.Report{ForumPostID: "p1"}))
	assert.Equal(t, "user", InferTargetType(&domain.Report{ReportedUserID: "u1"}))
	assert.Equal(t, "tool", InferTargetType(&domain.Report{ToolID: "t1"}))
	assert.Equal(t, "user", InferTargetType(&domain.Report{TargetType: " USER ", RentalID: "r1"}))

	assert.Equal(t, "r1", InferTargetID(&domain.Report{RentalID: "r1", ToolID: "t1"}))
	assert.Equal(t, "t1", InferTargetID(&domain.Report{ToolID: "t1"}))
	assert.Equal(t, "", InferTargetID(&domain.Report{}))
}

func TestReportedUserID(t *testing.T) {
	assert.Equal(t, "u1", ReportedUserID(&domain.Report{ReportedUserID: "u1", TargetUserID: "u2"}))
	assert.Equal(t, "u3", ReportedUserID(&domain.Report{OffenderUserID: "u3"}))
	assert.Equal(t, "", ReportedUserID(&domain.Report{}))
}

func TestNormalizeReporterRole(t *testing.T) {
	assert.Equal(t, "owner", NormalizeReporterRole("Lender"))
	assert.Equal(t, "renter", NormalizeReporterRole("borrower"))
	assert.Equal(t, "owner", NormalizeReporterRole("owner"))
}
