package repositories

import (
	"context"

	"github.com/citycable/cable_collect_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByUser retrieves a keyset-paginated list of a user's
	// payments, newest first.
	ListPaymentsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Payment, *string, error)

	// ListPendingPayments retrieves the admin review queue: PENDING
	// payments only, oldest first. INCOMPLETE payments never appear here.
	ListPendingPayments(ctx context.Context, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines write operations for payment lifecycle data
type PaymentWriter interface {
	// SavePayment persists a new payment intent. When the payment carries
	// a wallet leg to apply at creation, the wallet debit and the payment
	// insert happen in one database transaction.
	SavePayment(ctx context.Context, payment domain.Payment, applyWalletDebit bool) error

	// MarkReadyForReview transitions INCOMPLETE -> PENDING, recording the
	// external reference and proof. The status check and update are one
	// conditional statement; a payment in any other state returns
	// ErrInvalidStateTransition.
	MarkReadyForReview(ctx context.Context, paymentID, externalRef, proofRef, actorID string) (*domain.Payment, error)

	// ApprovePayment atomically: flips PENDING -> APPROVED (conditional
	// update), finalizes an unapplied wallet debit, allocates the next
	// receipt number for the service year, and stamps the resolution
	// fields. Returns the approved payment with its receipt.
	ApprovePayment(ctx context.Context, paymentID, adminID string) (*domain.Payment, *domain.Receipt, error)

	// RejectPayment atomically flips PENDING -> REJECTED, reverses any
	// applied wallet debit with a compensating credit, and records the
	// mandatory reason.
	RejectPayment(ctx context.Context, paymentID, adminID, reason string) (*domain.Payment, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
