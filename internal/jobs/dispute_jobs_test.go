package jobs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toolshare-admin/internal/config"
	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/jobs"
	"toolshare-admin/internal/service"
)

type MockReportService struct {
	service.ReportService
	mock.Mock
}

func (m *MockReportService) WarmDisputeCache(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockReportService) ListOpenDisputes(ctx context.Context) ([]domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

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

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDepositSettlement(ctx context.Context, toEmail, toName string, n *domain.Notification) error {
	return m.Called(ctx, toEmail, toName, n).Error(0)
}
func (m *MockEmailService) SendOpenDisputeDigest(ctx context.Context, toEmail, toName string, disputes []domain.Report) error {
	return m.Called(ctx, toEmail, toName, disputes).Error(0)
}

// TestSendOpenDisputeDigest verification of the daily digest job.
// Goal: Verify that:
// 1. Only authorized admins with an email receive the digest
// 2. Nothing is sent when no dispute is open
// 3. A failing recipient does not stop the others
func TestSendOpenDisputeDigest(t *testing.T) {
	open := []domain.Report{{ID: "r1", IssueType: "Deposit Dispute", RentalID: "rt1"}}
	admins := []domain.Admin{
		{UID: "a1", Email: "a1@example.com", Name: "Aina", Role: domain.AdminRoleAdmin, Active: true},
		{UID: "a2", Email: "a2@example.com", Name: "Ben", Role: domain.AdminRoleSuperAdmin, Active: true},
		{UID: "a3", Email: "a3@example.com", Role: "support", Active: true},
		{UID: "a4", Role: domain.AdminRoleAdmin, Active: true},
	}

	t.Run("Sends to each admin", func(t *testing.T) {
		reports, adminRepo, email := new(MockReportService), new(MockAdminRepo), new(MockEmailService)
		runner := jobs.NewJobRunner(reports, adminRepo, email, &config.Config{})

		reports.On("ListOpenDisputes", mock.Anything).Return(open, nil)
		adminRepo.On("ListActive", mock.Anything).Return(admins, nil)
		email.On("SendOpenDisputeDigest", mock.Anything, "a1@example.com", "Aina", open).Return(errors.New("rate limited"))
		email.On("SendOpenDisputeDigest", mock.Anything, "a2@example.com", "Ben", open).Return(nil)

		runner.SendOpenDisputeDigest()

		email.AssertNumberOfCalls(t, "SendOpenDisputeDigest", 2)
		email.AssertExpectations(t)
	})

	t.Run("No open disputes", func(t *testing.T) {
		reports, adminRepo, email := new(MockReportService), new(MockAdminRepo), new(MockEmailService)
		runner := jobs.NewJobRunner(reports, adminRepo, email, &config.Config{})
		reports.On("ListOpenDisputes", mock.Anything).Return([]domain.Report{}, nil)

		runner.SendOpenDisputeDigest()

		adminRepo.AssertNotCalled(t, "ListActive", mock.Anything)
		email.AssertNotCalled(t, "SendOpenDisputeDigest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWarmDisputeCache(t *testing.T) {
	reports := new(MockReportService)
	runner := jobs.NewJobRunner(reports, new(MockAdminRepo), new(MockEmailService), &config.Config{})
	reports.On("WarmDisputeCache", mock.Anything).Return(12, nil).Once()
	reports.On("WarmDisputeCache", mock.Anything).Return(0, errors.New("unavailable")).Once()

	runner.WarmDisputeCache()
	runner.WarmDisputeCache()

	reports.AssertNumberOfCalls(t, "WarmDisputeCache", 2)
}

func TestRunWithRecovery(t *testing.T) {
	reports := new(MockReportService)
	runner := jobs.NewJobRunner(reports, new(MockAdminRepo), new(MockEmailService), &config.Config{})
	reports.On("WarmDisputeCache", mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Return(0, nil)

	assert.NotPanics(t, runner.WarmDisputeCache)
}
