package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"

	"toolshare-admin/internal/cache"
	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/money"
	"toolshare-admin/internal/repository"
	"toolshare-admin/internal/service"
)

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
func (m *MockReportRepo) List(ctx context.Context, opts repository.ReportListOptions) ([]domain.Report, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}
func (m *MockReportRepo) UpdateDecision(ctx context.Context, id string, upd *domain.ReportDecisionUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ApplyDepositSettlement(ctx context.Context, id string, upd *domain.DepositSettlementUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ApplyModeration(ctx context.Context, id string, action *domain.ModerationAction) error {
	args := m.Called(ctx, id, action)
	return args.Error(0)
}

// MockAdminRepo
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetByUID(ctx context.Context, uid string) (*domain.Admin, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) ListActive(ctx context.Context) ([]domain.Admin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Admin), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockBookedRangeRepo
type MockBookedRangeRepo struct {
	mock.Mock
}

func (m *MockBookedRangeRepo) MarkCompleted(ctx context.Context, toolID, rentalID string) error {
	args := m.Called(ctx, toolID, rentalID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDepositSettlement(ctx context.Context, toEmail, toName string, n *domain.Notification) error {
	args := m.Called(ctx, toEmail, toName, n)
	return args.Error(0)
}
func (m *MockEmailService) SendOpenDisputeDigest(ctx context.Context, toEmail, toName string, disputes []domain.Report) error {
	args := m.Called(ctx, toEmail, toName, disputes)
	return args.Error(0)
}

type fixture struct {
	reports      *MockReportRepo
	rentals      *MockRentalRepo
	users        *MockUserRepo
	admins       *MockAdminRepo
	notes        *MockNotificationRepo
	bookedRanges *MockBookedRangeRepo
	email        *MockEmailService
	cache        *cache.MemoryCache
	svc          service.ReportService
}

func newFixture() *fixture {
	f := &fixture{
		reports:      new(MockReportRepo),
		rentals:      new(MockRentalRepo),
		users:        new(MockUserRepo),
		admins:       new(MockAdminRepo),
		notes:        new(MockNotificationRepo),
		bookedRanges: new(MockBookedRangeRepo),
		email:        new(MockEmailService),
		cache:        cache.NewMemoryCache(time.Minute),
	}
	f.svc = service.NewReportService(f.reports, f.rentals, f.users, f.admins, f.notes, f.bookedRanges, f.cache, f.email)
	return f
}

func (f *fixture) withAdmin(uid string) {
	f.admins.On("GetByUID", mock.Anything, uid).
		Return(&domain.Admin{UID: uid, Email: uid + "@example.com", Role: domain.AdminRoleAdmin, Active: true}, nil)
}

func amount(major int64) *money.Money {
	m := money.FromMinor(major * 100)
	return &m
}

func disputedRental() *domain.Rental {
	return &domain.Rental{
		ID:            "rt1",
		Status:        domain.RentalStatusDisputeOpened,
		ToolID:        "tool-1",
		OwnerID:       "o1",
		RenterID:      "u1",
		DepositAmount: amount(100),
	}
}

func depositReport() *domain.Report {
	return &domain.Report{
		ID:        "r1",
		IssueType: "Deposit Dispute",
		RentalID:  "rt1",
		Status:    domain.ReportStatusInReview,
	}
}

func fmtNotFound(path string) error {
	return fmt.Errorf("%s: %w", path, repository.ErrNotFound)
}
