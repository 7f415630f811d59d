package domain

import "time"

const AccountStatusBanned = "banned"

type User struct {
	ID            string `json:"id" firestore:"-"`
	Name          string `json:"name" firestore:"name"`
	Email         string `json:"email" firestore:"email"`
	WarningCount  int64  `json:"warning_count" firestore:"warningCount"`
	IsSuspended   bool   `json:"is_suspended" firestore:"isSuspended"`
	AccountStatus string `json:"account_status,omitempty" firestore:"accountStatus"`
}

// ModerationAction is the punitive action applied to a reported user.
type ModerationAction struct {
	Action  AdminAction
	AdminID string
	Reason  string
	At      time.Time
}

type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

// Admin is a console operator record keyed by auth uid.
type Admin struct {
	UID    string    `json:"uid" firestore:"-"`
	Email  string    `json:"email" firestore:"email"`
	Name   string    `json:"name" firestore:"name"`
	Role   AdminRole `json:"role" firestore:"role"`
	Active bool      `json:"active" firestore:"active"`
}

// IsAuthorized reports whether the record grants console access.
func (a *Admin) IsAuthorized() bool {
	return a != nil && a.Active && (a.Role == AdminRoleAdmin || a.Role == AdminRoleSuperAdmin)
}
