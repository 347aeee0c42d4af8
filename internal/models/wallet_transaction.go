package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTransaction is the wallet_transactions table row. Append-only.
type WalletTransaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Direction     string          `db:"direction"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	ReferenceID   string          `db:"reference_id"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
