package services

import (
	"context"

	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/utils/upilink"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment by its unique identifier.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByUser retrieves a page of one user's payments, newest first.
	ListPaymentsByUser(ctx context.Context, userID string, params dto.ListPaymentsParams) ([]domain.Payment, *string, error)

	// ListPendingPayments retrieves the admin review queue, oldest first.
	ListPendingPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, *string, error)
}

// PaymentWriterSvc defines the lifecycle operations on payments
type PaymentWriterSvc interface {
	// CreatePayment records a new payment intent. For channels with an
	// external leg it also returns the launch plan for the payer app.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actorID string) (*domain.Payment, *upilink.LaunchPlan, error)

	// MarkReadyForReview attaches the external confirmation and moves an
	// INCOMPLETE payment to PENDING.
	MarkReadyForReview(ctx context.Context, paymentID string, req dto.MarkReadyForReviewRequest, actorID string) (*domain.Payment, error)

	// ApprovePayment confirms a pending payment and issues its receipt.
	ApprovePayment(ctx context.Context, paymentID string, adminID string) (*domain.Payment, error)

	// RejectPayment declines a pending payment, refunding any wallet leg.
	RejectPayment(ctx context.Context, paymentID string, adminID string, req dto.RejectPaymentRequest) (*domain.Payment, error)
}

// ReceiptReaderSvc defines read operations for issued receipts
type ReceiptReaderSvc interface {
	// GetReceiptByPaymentID retrieves the receipt issued for an approved payment.
	GetReceiptByPaymentID(ctx context.Context, paymentID string) (*domain.Receipt, error)

	// ListReceiptsByYear retrieves a service year's receipts in sequence order.
	ListReceiptsByYear(ctx context.Context, serviceYear int) ([]domain.Receipt, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
// This is a facade for clients that need access to all operations
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	ReceiptReaderSvc
}
