// Package firestoredb implements the repositories on Cloud Firestore, the
// marketplace's system of record.
package firestoredb

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"toolshare-admin/internal/repository"
)

const (
	colReports           = "reports"
	colRentals           = "rentals"
	colUsers             = "users"
	colAdmins            = "admins"
	colNotifications     = "notifications"
	colUserNotifications = "userNotifications"
	colTools             = "tools"
	colBookedRanges      = "bookedRanges"
)

type Store struct {
	client        *firestore.Client
	reports       repository.ReportRepository
	rentals       repository.RentalRepository
	users         repository.UserRepository
	admins        repository.AdminRepository
	notifications repository.NotificationRepository
	bookedRanges  repository.BookedRangeRepository
}

func NewStore(client *firestore.Client) *Store {
	return &Store{
		client:        client,
		reports:       NewReportRepository(client),
		rentals:       NewRentalRepository(client),
		users:         NewUserRepository(client),
		admins:        NewAdminRepository(client),
		notifications: NewNotificationRepository(client),
		bookedRanges:  NewBookedRangeRepository(client),
	}
}

// NewApp initializes the Firebase app shared by the store and the auth
// verifier. An empty credentials file falls back to application default
// credentials.
func NewApp(ctx context.Context, projectID, credentialsFile string) (*firebase.App, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	return app, nil
}

// Open creates a Firestore-backed store from a Firebase app.
func Open(ctx context.Context, app *firebase.App) (*Store, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return NewStore(client), nil
}

func (s *Store) Reports() repository.ReportRepository             { return s.reports }
func (s *Store) Rentals() repository.RentalRepository             { return s.rentals }
func (s *Store) Users() repository.UserRepository                 { return s.users }
func (s *Store) Admins() repository.AdminRepository               { return s.admins }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }
func (s *Store) BookedRanges() repository.BookedRangeRepository   { return s.bookedRanges }

func (s *Store) Close() error {
	return s.client.Close()
}

// mapError translates Firestore's NotFound into repository.ErrNotFound.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return errors.Join(repository.ErrNotFound, err)
	}
	return err
}
