package domain

import (
	"strings"
	"time"
)

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusInReview ReportStatus = "in_review"
	ReportStatusResolved ReportStatus = "resolved"
	ReportStatusRejected ReportStatus = "rejected"
)

// ParseReportStatus accepts only the four known statuses.
func ParseReportStatus(s string) (ReportStatus, bool) {
	switch st := ReportStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case ReportStatusPending, ReportStatusInReview, ReportStatusResolved, ReportStatusRejected:
		return st, true
	default:
		return "", false
	}
}

// NormalizeReportStatus maps unknown or empty stored statuses to pending.
func NormalizeReportStatus(s ReportStatus) ReportStatus {
	if st, ok := ParseReportStatus(string(s)); ok {
		return st
	}
	return ReportStatusPending
}

// IsTerminal reports whether the status is absorbing.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusRejected
}

// NeedsAction is true for reports still waiting on an admin.
func (s ReportStatus) NeedsAction() bool {
	return s == ReportStatusPending || s == ReportStatusInReview
}

// CanTransition reports whether a report may move from one status to another.
// Open reports may move anywhere, including back from in_review to pending.
// Resolved and rejected only accept themselves, which callers treat as a no-op.
func CanTransition(from, to ReportStatus) bool {
	if from.IsTerminal() {
		return from == to
	}
	return true
}

type AdminAction string

const (
	AdminActionNone    AdminAction = "none"
	AdminActionWarn    AdminAction = "warn"
	AdminActionSuspend AdminAction = "suspend"
	AdminActionBan     AdminAction = "ban"
)

// ParseAdminAction accepts none, warn, suspend and ban. Empty means none.
func ParseAdminAction(s string) (AdminAction, bool) {
	switch a := AdminAction(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AdminActionNone, true
	case AdminActionNone, AdminActionWarn, AdminActionSuspend, AdminActionBan:
		return a, true
	default:
		return "", false
	}
}

const (
	DecisionResultValid   = "valid"
	DecisionResultInvalid = "invalid"
)

type ReportDecision struct {
	Result         string        `json:"result,omitempty" firestore:"result,omitempty"`
	AdminAction    AdminAction   `json:"admin_action,omitempty" firestore:"adminAction,omitempty"`
	DepositOutcome DepositStatus `json:"deposit_outcome,omitempty" firestore:"depositOutcome,omitempty"`
}

type Report struct {
	ID          string       `json:"id" firestore:"-"`
	Status      ReportStatus `json:"status" firestore:"status"`
	IssueType   string       `json:"issue_type" firestore:"issueType"`
	Reason      string       `json:"reason" firestore:"reason"`
	Description string       `json:"description" firestore:"description"`

	TargetType string `json:"target_type" firestore:"targetType"`
	TargetID   string `json:"target_id" firestore:"targetId"`

	// Rental link fields, in lookup priority order.
	RentalID      string `json:"rental_id,omitempty" firestore:"rentalId"`
	BookingID     string `json:"booking_id,omitempty" firestore:"bookingId"`
	TransactionID string `json:"transaction_id,omitempty" firestore:"transactionId"`
	BookingRef    string `json:"booking_ref,omitempty" firestore:"bookingRef"`

	ToolID      string `json:"tool_id,omitempty" firestore:"toolId"`
	ForumPostID string `json:"forum_post_id,omitempty" firestore:"forumPostId"`

	ReportedBy     string `json:"reported_by" firestore:"reportedBy"`
	ReportedByName string `json:"reported_by_name" firestore:"reportedByName"`
	ReporterRole   string `json:"reporter_role" firestore:"reporterRole"`

	ReportedUserID string `json:"reported_user_id,omitempty" firestore:"reportedUserId"`
	TargetUserID   string `json:"target_user_id,omitempty" firestore:"targetUserId"`
	OffenderUserID string `json:"offender_user_id,omitempty" firestore:"offenderUserId"`

	AdminNotes string          `json:"admin_notes" firestore:"adminNotes"`
	Decision   *ReportDecision `json:"decision,omitempty" firestore:"decision"`

	IsDepositCase           bool          `json:"is_deposit_case" firestore:"isDepositCase"`
	LinkedRentalID          string        `json:"linked_rental_id,omitempty" firestore:"linkedRentalId"`
	DepositDecisionApplied  bool          `json:"deposit_decision_applied" firestore:"depositDecisionApplied"`
	DepositDecision         DepositStatus `json:"deposit_decision,omitempty" firestore:"depositDecision"`
	LinkedRentalFinalStatus RentalStatus  `json:"linked_rental_final_status,omitempty" firestore:"linkedRentalFinalStatus"`

	CreatedAt  time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time  `json:"updated_at" firestore:"updatedAt"`
	DecidedAt  *time.Time `json:"decided_at,omitempty" firestore:"decidedAt"`
	DecidedBy  string     `json:"decided_by,omitempty" firestore:"decidedBy"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt"`
	ResolvedBy string     `json:"resolved_by,omitempty" firestore:"resolvedBy"`
}

// ReportDecisionUpdate is the full set of fields written when an admin saves
// a decision. Every field is written with an absolute value.
type ReportDecisionUpdate struct {
	Status     ReportStatus
	AdminNotes string
	Decision   ReportDecision
	DecidedBy  string
	DecidedAt  time.Time

	IsDepositCase           bool
	LinkedRentalID          string
	DepositDecisionApplied  bool
	DepositDecision         DepositStatus
	LinkedRentalFinalStatus RentalStatus

	// Set only for terminal statuses.
	ResolvedAt *time.Time
	ResolvedBy string
}
