package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"toolshare-admin/internal/cache"
	"toolshare-admin/internal/dispute"
	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"
)

const (
	reportListLimit = 200
	// maxStatusFetches caps rental reads per cache warm-up.
	maxStatusFetches = 80
)

type reportService struct {
	reportRepo      repository.ReportRepository
	rentalRepo      repository.RentalRepository
	userRepo        repository.UserRepository
	adminRepo       repository.AdminRepository
	noteRepo        repository.NotificationRepository
	bookedRangeRepo repository.BookedRangeRepository
	statusCache     cache.RentalStatusCache
	emailSvc        EmailService
	guard           *sessionGuard
	now             func() time.Time
}

func NewReportService(
	reportRepo repository.ReportRepository,
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	noteRepo repository.NotificationRepository,
	bookedRangeRepo repository.BookedRangeRepository,
	statusCache cache.RentalStatusCache,
	emailSvc EmailService,
) ReportService {
	return &reportService{
		reportRepo:      reportRepo,
		rentalRepo:      rentalRepo,
		userRepo:        userRepo,
		adminRepo:       adminRepo,
		noteRepo:        noteRepo,
		bookedRangeRepo: bookedRangeRepo,
		statusCache:     statusCache,
		emailSvc:        emailSvc,
		guard:           newSessionGuard(),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// NewReportServiceFromStore wires a ReportService to every repository of a
// backend.
func NewReportServiceFromStore(store repository.Store, statusCache cache.RentalStatusCache, emailSvc EmailService) ReportService {
	return NewReportService(store.Reports(), store.Rentals(), store.Users(), store.Admins(),
		store.Notifications(), store.BookedRanges(), statusCache, emailSvc)
}

func (s *reportService) lookup(ctx context.Context) dispute.StatusLookup {
	return func(rentalID string) (domain.RentalStatus, bool) {
		return s.statusCache.Get(ctx, rentalID)
	}
}

func (s *reportService) ListReports(ctx context.Context, adminUID string, filter ReportFilter) ([]ReportSummary, error) {
	logger.EnterMethod("reportService.ListReports", "adminUID", adminUID, "status", filter.Status, "disputesOnly", filter.DisputesOnly)

	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		logger.ExitMethodWithError("reportService.ListReports", err)
		return nil, err
	}

	reports, err := s.reportRepo.List(ctx, repository.ReportListOptions{Limit: reportListLimit})
	if err != nil {
		logger.ExitMethodWithError("reportService.ListReports", err)
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.warmRentalStatuses(ctx, reports)
	lookup := s.lookup(ctx)

	summaries := make([]ReportSummary, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		open := dispute.IsOpenDispute(r, lookup)
		if !filter.matches(r, open) {
			continue
		}
		rentalID, _ := dispute.InferRentalID(r)
		summaries = append(summaries, ReportSummary{
			Report:             *r,
			InferredTargetType: dispute.InferTargetType(r),
			InferredTargetID:   dispute.InferTargetID(r),
			InferredRentalID:   rentalID,
			DepositCase:        dispute.IsDepositCase(r),
			OpenDispute:        open,
		})
	}

	logger.ExitMethod("reportService.ListReports", "total", len(reports), "matched", len(summaries))
	return summaries, nil
}

func (f ReportFilter) matches(r *domain.Report, openDispute bool) bool {
	status := domain.NormalizeReportStatus(r.Status)
	switch want := strings.ToLower(strings.TrimSpace(f.Status)); want {
	case "", "all":
	case string(domain.ReportStatusPending):
		if !status.NeedsAction() {
			return false
		}
	default:
		if string(status) != want {
			return false
		}
	}

	if t := strings.ToLower(strings.TrimSpace(f.TargetType)); t != "" && t != "all" && dispute.InferTargetType(r) != t {
		return false
	}

	if role := dispute.NormalizeReporterRole(f.ReporterRole); role != "" && role != "all" &&
		dispute.NormalizeReporterRole(r.ReporterRole) != role {
		return false
	}

	if f.ToolID != "" {
		toolID := r.ToolID
		if toolID == "" && dispute.InferTargetType(r) == dispute.TargetTypeTool {
			toolID = dispute.InferTargetID(r)
		}
		if toolID != f.ToolID {
			return false
		}
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !strings.Contains(searchBlob(r), q) {
		return false
	}

	return !f.DisputesOnly || openDispute
}

func searchBlob(r *domain.Report) string {
	return strings.ToLower(strings.Join([]string{
		r.ID, string(r.Status), r.IssueType, r.Description, r.ReportedByName, r.ReportedBy,
		r.ReporterRole, r.BookingID, r.RentalID, r.ToolID, r.ReportedUserID,
	}, " "))
}

// warmRentalStatuses fetches the status of uncached rentals linked to
// dispute candidates. Fetch failures are cached as unknown.
func (s *reportService) warmRentalStatuses(ctx context.Context, reports []domain.Report) int {
	seen := make(map[string]bool)
	fetched := 0
	for i := range reports {
		if fetched >= maxStatusFetches {
			break
		}
		if !dispute.IsDisputeCandidate(&reports[i]) {
			continue
		}
		rentalID, _ := dispute.InferRentalID(&reports[i])
		if seen[rentalID] {
			continue
		}
		seen[rentalID] = true
		if _, ok := s.statusCache.Get(ctx, rentalID); ok {
			continue
		}

		var status domain.RentalStatus
		rental, err := s.rentalRepo.GetByID(ctx, rentalID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				logger.Warn("Rental status fetch failed", "rentalID", rentalID, "error", err)
			}
		} else {
			status = rental.Status
		}
		s.statusCache.Set(ctx, rentalID, status)
		fetched++
	}
	return fetched
}

func (s *reportService) WarmDisputeCache(ctx context.Context) (int, error) {
	reports, err := s.reportRepo.List(ctx, repository.ReportListOptions{Limit: reportListLimit})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return s.warmRentalStatuses(ctx, reports), nil
}

// ListOpenDisputes returns reports still needing action whose rental is in
// dispute.
func (s *reportService) ListOpenDisputes(ctx context.Context) ([]domain.Report, error) {
	reports, err := s.reportRepo.List(ctx, repository.ReportListOptions{Limit: reportListLimit})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	s.warmRentalStatuses(ctx, reports)

	lookup := s.lookup(ctx)
	var open []domain.Report
	for i := range reports {
		if domain.NormalizeReportStatus(reports[i].Status).NeedsAction() && dispute.IsOpenDispute(&reports[i], lookup) {
			open = append(open, reports[i])
		}
	}
	return open, nil
}

func (s *reportService) loadReport(ctx context.Context, reportID string) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return report, nil
}

// loadRental returns nil without error when the rental does not exist.
func (s *reportService) loadRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return rental, nil
}

func (s *reportService) GetReport(ctx context.Context, adminUID, reportID string) (*ReportDetail, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	detail := &ReportDetail{Report: report, DepositCase: dispute.IsDepositCase(report)}
	rentalID, ok := dispute.InferRentalID(report)
	if !ok {
		return detail, nil
	}
	detail.InferredRentalID = rentalID

	rental, err := s.loadRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	detail.Rental = rental
	if rental != nil {
		s.statusCache.Set(ctx, rentalID, rental.Status)
	}
	if err := dispute.CheckSettleable(rental); err != nil {
		detail.BlockedReason = err.Error()
	} else {
		detail.Settleable = true
	}
	return detail, nil
}

func (s *reportService) PreviewSettlement(ctx context.Context, adminUID, reportID string, req PreviewRequest) (*SettlementPreview, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !dispute.IsDepositCase(report) {
		return nil, fmt.Errorf("%w: report %s is not a deposit dispute", ErrValidation, reportID)
	}
	rentalID, ok := dispute.InferRentalID(report)
	if !ok {
		return nil, fmt.Errorf("%w: report %s", ErrMissingLink, reportID)
	}

	next := domain.ReportStatusResolved
	if req.NextStatus != "" {
		st, ok := domain.ParseReportStatus(req.NextStatus)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, req.NextStatus)
		}
		next = st
	}
	selected, err := dispute.ParseOutcome(req.DepositDecision)
	if err != nil && next != domain.ReportStatusRejected {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	rental, err := s.loadRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if err := dispute.CheckSettleable(rental); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSettleable, err)
	}

	outcome := dispute.EffectiveOutcome(selected, next)
	settlement, err := dispute.Decide(outcome, *rental.DepositAmount, req.PartialAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return &SettlementPreview{
		Settlement: settlement,
		Summary:    settlement.Summary(),
		Overridden: outcome != selected,
	}, nil
}
