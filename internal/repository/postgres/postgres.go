package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Store struct {
	db            *sql.DB
	reports       repository.ReportRepository
	rentals       repository.RentalRepository
	users         repository.UserRepository
	admins        repository.AdminRepository
	notifications repository.NotificationRepository
	bookedRanges  repository.BookedRangeRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		reports:       NewReportRepository(db),
		rentals:       NewRentalRepository(db),
		users:         NewUserRepository(db),
		admins:        NewAdminRepository(db),
		notifications: NewNotificationRepository(db),
		bookedRanges:  NewBookedRangeRepository(db),
	}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewStore(db), nil
}

// EnsureSchema creates the tables the console reads and writes if they are
// missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	logger.DatabaseCall("EXEC", "schema.sql")
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("EXEC", 0, err)
	return err
}

func (s *Store) Reports() repository.ReportRepository             { return s.reports }
func (s *Store) Rentals() repository.RentalRepository             { return s.rentals }
func (s *Store) Users() repository.UserRepository                 { return s.users }
func (s *Store) Admins() repository.AdminRepository               { return s.admins }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }
func (s *Store) BookedRanges() repository.BookedRangeRepository   { return s.bookedRanges }

func (s *Store) Close() error {
	return s.db.Close()
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func nullTimeOf(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
