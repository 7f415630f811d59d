package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReportStatus(t *testing.T) {
	st, ok := ParseReportStatus(" In_Review ")
	assert.True(t, ok)
	assert.Equal(t, ReportStatusInReview, st)

	_, ok = ParseReportStatus("closed")
	assert.False(t, ok)

	assert.Equal(t, ReportStatusPending, NormalizeReportStatus("weird"))
	assert.Equal(t, ReportStatusPending, NormalizeReportStatus(""))
	assert.Equal(t, ReportStatusRejected, NormalizeReportStatus("REJECTED"))
}

// TestCanTransition verification of the report status machine.
// Goal: Verify that:
// 1. pending and in_review move to any status, including in_review back to pending
// 2. resolved and rejected accept nothing but themselves
func TestCanTransition(t *testing.T) {
	all := []ReportStatus{ReportStatusPending, ReportStatusInReview, ReportStatusResolved, ReportStatusRejected}

	allowed := map[ReportStatus][]ReportStatus{
		ReportStatusPending:  {ReportStatusPending, ReportStatusInReview, ReportStatusResolved, ReportStatusRejected},
		ReportStatusInReview: {ReportStatusPending, ReportStatusInReview, ReportStatusResolved, ReportStatusRejected},
		ReportStatusResolved: {ReportStatusResolved},
		ReportStatusRejected: {ReportStatusRejected},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestParseAdminAction(t *testing.T) {
	a, ok := ParseAdminAction("")
	assert.True(t, ok)
	assert.Equal(t, AdminActionNone, a)

	a, ok = ParseAdminAction("Suspend")
	assert.True(t, ok)
	assert.Equal(t, AdminActionSuspend, a)

	_, ok = ParseAdminAction("delete")
	assert.False(t, ok)
}

func TestAdminIsAuthorized(t *testing.T) {
	var missing *Admin
	assert.False(t, missing.IsAuthorized())
	assert.False(t, (&Admin{Role: AdminRoleAdmin}).IsAuthorized())
	assert.False(t, (&Admin{Role: "support", Active: true}).IsAuthorized())
	assert.True(t, (&Admin{Role: AdminRoleSuperAdmin, Active: true}).IsAuthorized())
}
