package service

import (
	"context"

	"toolshare-admin/internal/dispute"
	"toolshare-admin/internal/domain"
)

// ReportService is the admin console's reports workflow: the report queue,
// report detail and the deposit-dispute resolution.
type ReportService interface {
	ListReports(ctx context.Context, adminUID string, filter ReportFilter) ([]ReportSummary, error)
	GetReport(ctx context.Context, adminUID, reportID string) (*ReportDetail, error)
	PreviewSettlement(ctx context.Context, adminUID, reportID string, req PreviewRequest) (*SettlementPreview, error)
	ResolveReport(ctx context.Context, req ResolveRequest) (*ResolveResult, error)

	// Used by scheduled jobs; no admin session involved.
	WarmDisputeCache(ctx context.Context) (int, error)
	ListOpenDisputes(ctx context.Context) ([]domain.Report, error)
}

type EmailService interface {
	SendDepositSettlement(ctx context.Context, toEmail, toName string, n *domain.Notification) error
	SendOpenDisputeDigest(ctx context.Context, toEmail, toName string, disputes []domain.Report) error
}

// ReportFilter narrows the report queue. Empty fields match everything.
type ReportFilter struct {
	Status       string // "pending" matches everything still needing action
	TargetType   string
	ReporterRole string
	ToolID       string
	Query        string
	DisputesOnly bool
}

type ReportSummary struct {
	domain.Report
	InferredTargetType string `json:"inferred_target_type"`
	InferredTargetID   string `json:"inferred_target_id"`
	InferredRentalID   string `json:"inferred_rental_id,omitempty"`
	DepositCase        bool   `json:"deposit_case"`
	OpenDispute        bool   `json:"open_dispute"`
}

type ReportDetail struct {
	Report           *domain.Report `json:"report"`
	InferredRentalID string         `json:"inferred_rental_id,omitempty"`
	DepositCase      bool           `json:"deposit_case"`
	Rental           *domain.Rental `json:"rental,omitempty"`
	Settleable       bool           `json:"settleable"`
	BlockedReason    string         `json:"blocked_reason,omitempty"`
}

type PreviewRequest struct {
	NextStatus      string
	DepositDecision string
	PartialAmount   string
}

type SettlementPreview struct {
	Settlement dispute.Settlement `json:"settlement"`
	Summary    string             `json:"summary"`
	// Overridden is set when a rejection forces a full release.
	Overridden bool `json:"overridden"`
}

// ResolveRequest is one "save decision" from the console.
type ResolveRequest struct {
	ReportID        string
	AdminUID        string
	NextStatus      string
	Notes           string
	DepositDecision string
	PartialAmount   string
	PunitiveAction  string
}

type ResolveResult struct {
	ReportID string              `json:"report_id"`
	Status   domain.ReportStatus `json:"status"`
	// NoOp is set when a terminal report was saved with its own status.
	NoOp              bool                `json:"no_op"`
	Settlement        *dispute.Settlement `json:"settlement,omitempty"`
	SettlementSkipped string              `json:"settlement_skipped,omitempty"`
	NotificationsSent int                 `json:"notifications_sent"`
	PunitiveAction    domain.AdminAction  `json:"punitive_action,omitempty"`
	PunitiveApplied   bool                `json:"punitive_applied"`
}
