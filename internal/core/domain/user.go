package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole determines what a caller may do. Collectors enter cash payments
// and top-ups; admins additionally resolve the review queue.
type UserRole string

const (
	RoleSubscriber UserRole = "USER"
	RoleCollector  UserRole = "COLLECTOR"
	RoleAdmin      UserRole = "ADMIN"
)

// CanCollect reports whether the role may record cash payments and top-ups.
func (r UserRole) CanCollect() bool {
	return r == RoleCollector || r == RoleAdmin
}

// CanResolve reports whether the role may approve or reject payments.
func (r UserRole) CanResolve() bool {
	return r == RoleAdmin
}

// User represents a subscriber, collector, or admin of the operator.
//
// WalletBalance is a read cache. The wallet_transactions ledger is the source
// of truth and every balance mutation goes through the wallet repository,
// which rewrites the cache in the same database transaction as the ledger
// append. Nothing else may touch it.
type User struct {
	UserID        string          `json:"userID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	Username      string          `json:"username"`
	Phone         string          `json:"phone"`
	Role          UserRole        `json:"role"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
	IsActive      bool            `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete

	// Refresh token state, only populated for auth flows and never serialized.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
