package repository

import (
	"context"
	"errors"

	"toolshare-admin/internal/domain"
)

// ErrNotFound is returned by every backend when a document does not exist.
var ErrNotFound = errors.New("document not found")

// ReportListOptions bounds a report listing. Reports are always returned
// newest first.
type ReportListOptions struct {
	Limit int
}

type ReportRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, opts ReportListOptions) ([]domain.Report, error)
	UpdateDecision(ctx context.Context, id string, upd *domain.ReportDecisionUpdate) error
}

type RentalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	ApplyDepositSettlement(ctx context.Context, id string, upd *domain.DepositSettlementUpdate) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ApplyModeration(ctx context.Context, id string, action *domain.ModerationAction) error
}

type AdminRepository interface {
	GetByUID(ctx context.Context, uid string) (*domain.Admin, error)
	ListActive(ctx context.Context) ([]domain.Admin, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
}

// BookedRangeRepository maintains a tool's calendar of booked rentals.
type BookedRangeRepository interface {
	MarkCompleted(ctx context.Context, toolID, rentalID string) error
}

// Store groups every repository a backend provides.
type Store interface {
	Reports() ReportRepository
	Rentals() RentalRepository
	Users() UserRepository
	Admins() AdminRepository
	Notifications() NotificationRepository
	BookedRanges() BookedRangeRepository
	Close() error
}
