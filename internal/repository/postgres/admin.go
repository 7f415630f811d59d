package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/repository"
)

type adminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByUID(ctx context.Context, uid string) (*domain.Admin, error) {
	a := &domain.Admin{}
	query := `SELECT uid, email, name, role, active FROM admins WHERE uid = $1`
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&a.UID, &a.Email, &a.Name, &a.Role, &a.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin %s: %w", uid, err)
	}
	a.Role = domain.AdminRole(strings.ToLower(string(a.Role)))
	return a, nil
}

func (r *adminRepository) ListActive(ctx context.Context) ([]domain.Admin, error) {
	query := `SELECT uid, email, name, role, active FROM admins WHERE active = TRUE ORDER BY uid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.UID, &a.Email, &a.Name, &a.Role, &a.Active); err != nil {
			return nil, err
		}
		a.Role = domain.AdminRole(strings.ToLower(string(a.Role)))
		admins = append(admins, a)
	}
	return admins, rows.Err()
}
