package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates whether a ledger entry adds to or removes
// from the wallet balance.
type TransactionDirection string

const (
	DirectionCredit TransactionDirection = "CREDIT"
	DirectionDebit  TransactionDirection = "DEBIT"
)

// WalletTransaction is one immutable row of the prepaid-balance ledger.
// Rows are append-only; corrections are new offsetting rows, never edits.
// BalanceBefore/BalanceAfter snapshot the cached balance around the entry so
// the ledger can be audited without replaying history.
type WalletTransaction struct {
	TransactionID string               `json:"transactionID"` // Primary Key (UUID)
	UserID        string               `json:"userID"`
	Amount        decimal.Decimal      `json:"amount"` // always positive
	Direction     TransactionDirection `json:"direction"`
	BalanceBefore decimal.Decimal      `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal      `json:"balanceAfter"`
	// ReferenceID links the entry to the payment or top-up that caused it.
	ReferenceID string    `json:"referenceID"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}
