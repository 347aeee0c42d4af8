package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row.
type Payment struct {
	PaymentID   string `db:"payment_id"`
	UserID      string `db:"user_id"`
	ServiceYear int    `db:"service_year"`
	Method      string `db:"method"`
	Status      string `db:"status"`

	BaseAmount    decimal.Decimal `db:"base_amount"`
	LateFee       decimal.Decimal `db:"late_fee"`
	WireSurcharge decimal.Decimal `db:"wire_surcharge"`
	ExtraCharges  decimal.Decimal `db:"extra_charges"`
	TotalAmount   decimal.Decimal `db:"total_amount"`

	WalletAmountUsed   decimal.Decimal `db:"wallet_amount_used"`
	ExternalAmountPaid decimal.Decimal `db:"external_amount_paid"`
	WalletDebited      bool            `db:"wallet_debited"`

	ExternalTransactionRef string `db:"external_transaction_ref"`
	ProofRef               string `db:"proof_ref"`

	ReceiptNumber   string     `db:"receipt_number"`
	RejectionReason string     `db:"rejection_reason"`
	ResolvedBy      string     `db:"resolved_by"`
	ResolvedAt      *time.Time `db:"resolved_at"`

	AuditFields
}
