package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, warning_count, is_suspended, account_status FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.WarningCount, &u.IsSuspended, &u.AccountStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return u, nil
}

func (r *userRepository) ApplyModeration(ctx context.Context, id string, a *domain.ModerationAction) error {
	logger.EnterMethod("userRepository.ApplyModeration", "userID", id, "action", a.Action)

	var query string
	switch a.Action {
	case domain.AdminActionWarn:
		query = `UPDATE users SET warning_count = warning_count + 1, last_warning_at=$1, last_warning_reason=$2,
			last_admin_action=$3, last_admin_action_at=$1, last_admin_action_by=$4, updated_at=$1 WHERE id=$5`
	case domain.AdminActionSuspend:
		query = `UPDATE users SET is_suspended = TRUE, suspended_at=$1, suspend_reason=$2,
			last_admin_action=$3, last_admin_action_at=$1, last_admin_action_by=$4, suspended_by=$4, updated_at=$1 WHERE id=$5`
	case domain.AdminActionBan:
		query = `UPDATE users SET account_status = 'banned', banned_at=$1, ban_reason=$2,
			last_admin_action=$3, last_admin_action_at=$1, last_admin_action_by=$4, banned_by=$4, updated_at=$1 WHERE id=$5`
	default:
		return fmt.Errorf("unsupported moderation action: %s", a.Action)
	}

	logger.DatabaseCall("UPDATE", "users", "userID", id, "action", a.Action)
	res, err := r.db.ExecContext(ctx, query, a.At, a.Reason, a.Action, a.AdminID, id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "userID", id)
		logger.ExitMethodWithError("userRepository.ApplyModeration", err, "userID", id)
		return fmt.Errorf("failed to apply %s to user %s: %w", a.Action, id, err)
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, nil, "userID", id)
	if n == 0 {
		return repository.ErrNotFound
	}

	logger.ExitMethod("userRepository.ApplyModeration", "userID", id)
	return nil
}
