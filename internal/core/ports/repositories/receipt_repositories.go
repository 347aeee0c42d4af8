package repositories

import (
	"context"

	"github.com/citycable/cable_collect_app/internal/core/domain"
)

// ReceiptReader defines read operations for issued receipts. Issuance itself
// lives inside the payment approval transaction.
type ReceiptReader interface {
	// FindReceiptByPaymentID retrieves the receipt issued for a payment.
	FindReceiptByPaymentID(ctx context.Context, paymentID string) (*domain.Receipt, error)

	// ListReceiptsByYear retrieves all receipts of a service year in
	// sequence order.
	ListReceiptsByYear(ctx context.Context, serviceYear int) ([]domain.Receipt, error)
}

// ReceiptRepositoryFacade combines all receipt-related repository interfaces
type ReceiptRepositoryFacade interface {
	ReceiptReader
}
