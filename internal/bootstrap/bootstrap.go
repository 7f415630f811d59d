// Package bootstrap builds the backends selected in the configuration. It is
// shared by the API server and the cron job runner.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"

	"toolshare-admin/internal/cache"
	"toolshare-admin/internal/config"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"
	"toolshare-admin/internal/repository/firestoredb"
	"toolshare-admin/internal/repository/postgres"
	"toolshare-admin/internal/security"
	"toolshare-admin/internal/service"
)

// Backends holds every long-lived dependency built from the configuration.
type Backends struct {
	Store       repository.Store
	StatusCache cache.RentalStatusCache
	Email       service.EmailService
	Reports     service.ReportService

	firebaseApp *firebase.App
	closers     []func() error
}

// Open connects the document store, the status cache and the email sender.
func Open(ctx context.Context, cfg *config.Config) (*Backends, error) {
	b := &Backends{}

	// 1. Document store
	switch cfg.Store.Type {
	case config.StorePostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		store, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
		b.Store = store
	default:
		logger.Info("Connecting to Firestore...", "project", cfg.Firebase.ProjectID)
		app, err := b.firebase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store, err := firestoredb.Open(ctx, app)
		if err != nil {
			return nil, err
		}
		b.Store = store
	}
	b.closers = append(b.closers, b.Store.Close)
	logger.Info("Document store ready", "type", cfg.Store.Type)

	// 2. Rental status cache
	ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
	if cfg.Redis.Addr != "" {
		rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, cache reads will miss until it recovers", "addr", cfg.Redis.Addr, "error", err)
		}
		b.StatusCache = cache.NewRedisCache(rdb, ttl)
		b.closers = append(b.closers, rdb.Close)
		logger.Info("Using Redis rental status cache", "addr", cfg.Redis.Addr)
	} else {
		b.StatusCache = cache.NewMemoryCache(ttl)
		logger.Info("Using in-memory rental status cache")
	}

	// 3. Email
	b.Email = service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.FromName)

	b.Reports = service.NewReportServiceFromStore(b.Store, b.StatusCache, b.Email)
	return b, nil
}

// Verifier returns the bearer token verifier for the configured provider.
func (b *Backends) Verifier(ctx context.Context, cfg *config.Config) (security.Verifier, error) {
	if cfg.Auth.Provider == config.AuthJWT {
		logger.Info("Verifying admin tokens with HS256 JWT", "issuer", cfg.Auth.JWTIssuer)
		return security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer), nil
	}

	app, err := b.firebase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase auth client: %w", err)
	}
	logger.Info("Verifying admin tokens with Firebase Auth", "project", cfg.Firebase.ProjectID)
	return security.NewFirebaseVerifier(client), nil
}

func (b *Backends) firebase(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	if b.firebaseApp != nil {
		return b.firebaseApp, nil
	}
	app, err := firestoredb.NewApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		return nil, err
	}
	b.firebaseApp = app
	return app, nil
}

// Close releases every connection opened by Open, newest first.
func (b *Backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("Failed to close backend", "error", err)
		}
	}
}
