package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the channel a payment arrives through.
type PaymentMethod string

const (
	// MethodUPIRedirect hands off to an external UPI app via deep link.
	// Completion is never observed directly; the subscriber supplies the
	// UPI reference and a proof image afterwards.
	MethodUPIRedirect PaymentMethod = "EXTERNAL_REDIRECT"
	MethodCash        PaymentMethod = "CASH"
	MethodWallet      PaymentMethod = "WALLET"
	// MethodCombined splits the total between the wallet and a UPI payment.
	MethodCombined PaymentMethod = "COMBINED"
)

// Valid reports whether m is one of the four known channels.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodUPIRedirect, MethodCash, MethodWallet, MethodCombined:
		return true
	}
	return false
}

// UsesExternalLeg reports whether the channel carries an externally paid
// portion that needs a UPI reference before review.
func (m PaymentMethod) UsesExternalLeg() bool {
	return m == MethodUPIRedirect || m == MethodCombined
}

// UsesWalletLeg reports whether the channel debits the prepaid wallet.
func (m PaymentMethod) UsesWalletLeg() bool {
	return m == MethodWallet || m == MethodCombined
}

// PaymentStatus is the payment lifecycle state.
//
//	INCOMPLETE -> PENDING -> APPROVED
//	                      -> REJECTED
//
// APPROVED and REJECTED are terminal; a payment never regresses.
type PaymentStatus string

const (
	// StatusIncomplete: a redirect-channel payment created before the
	// subscriber supplied the external reference. Hidden from the admin
	// review queue.
	StatusIncomplete PaymentStatus = "INCOMPLETE"
	StatusPending    PaymentStatus = "PENDING"
	StatusApproved   PaymentStatus = "APPROVED"
	StatusRejected   PaymentStatus = "REJECTED"
)

// Terminal reports whether no further transition is allowed from s.
func (s PaymentStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Payment is the intent created when a subscriber (or collector) starts
// settling a service year's dues, tracked until an admin resolves it.
type Payment struct {
	PaymentID   string        `json:"paymentID"` // Primary Key (UUID)
	UserID      string        `json:"userID"`
	ServiceYear int           `json:"serviceYear"`
	Method      PaymentMethod `json:"method"`
	Status      PaymentStatus `json:"status"`

	BaseAmount    decimal.Decimal `json:"baseAmount"`
	LateFee       decimal.Decimal `json:"lateFee"`
	WireSurcharge decimal.Decimal `json:"wireSurcharge"`
	ExtraCharges  decimal.Decimal `json:"extraCharges"`
	// TotalAmount is always base + late + wire + extra; enforced at
	// creation and by a table CHECK constraint.
	TotalAmount decimal.Decimal `json:"totalAmount"`

	// Split for COMBINED payments; both zero otherwise.
	WalletAmountUsed   decimal.Decimal `json:"walletAmountUsed"`
	ExternalAmountPaid decimal.Decimal `json:"externalAmountPaid"`
	// WalletDebited records whether the wallet leg has been applied to the
	// ledger, so rejection knows to write the compensating credit.
	WalletDebited bool `json:"walletDebited"`

	ExternalTransactionRef string `json:"externalTransactionRef,omitempty"`
	ProofRef               string `json:"proofRef,omitempty"` // opaque blob/URL reference

	ReceiptNumber   string     `json:"receiptNumber,omitempty"` // assigned on approval only
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ResolvedBy      string     `json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`

	AuditFields
}

// ReviewReady reports whether the payment has everything the admin queue
// requires for its channel.
func (p *Payment) ReviewReady() bool {
	if p.Method.UsesExternalLeg() {
		return p.ExternalTransactionRef != "" && p.ProofRef != ""
	}
	return true
}
