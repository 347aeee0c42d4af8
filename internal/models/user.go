package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// User is the users table row. WalletBalance mirrors the ledger and is only
// written inside wallet repository transactions.
type User struct {
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	Username      string          `db:"username"`
	PasswordHash  string          `db:"password_hash"`
	Phone         string          `db:"phone"`
	Role          string          `db:"role"`
	WalletBalance decimal.Decimal `db:"wallet_balance"`
	IsActive      bool            `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh token storage (hash only, never the raw token).
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
