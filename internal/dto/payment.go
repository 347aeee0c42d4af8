package dto

import (
	"time"

	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/citycable/cable_collect_app/internal/utils/upilink"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest starts a payment intent for one service year.
type CreatePaymentRequest struct {
	UserID      string `json:"userID"` // defaults to the caller; collectors set it explicitly
	ServiceYear int    `json:"serviceYear" binding:"required"`
	Method      string `json:"method" binding:"required,paymentmethod"`

	Fee FeeQuoteRequest `json:"fee" binding:"required"`

	// COMBINED only: how the total splits between wallet and UPI.
	WalletAmountUsed   decimal.Decimal `json:"walletAmountUsed"`
	ExternalAmountPaid decimal.Decimal `json:"externalAmountPaid"`

	// Optional at creation for redirect channels; without it the payment
	// starts INCOMPLETE.
	ExternalTransactionRef string `json:"externalTransactionRef"`
	ProofRef               string `json:"proofRef"`
}

// MarkReadyForReviewRequest supplies the externally observed confirmation.
type MarkReadyForReviewRequest struct {
	ExternalTransactionRef string `json:"externalTransactionRef" binding:"required,max=64"`
	ProofRef               string `json:"proofRef" binding:"required"`
}

// RejectPaymentRequest carries the mandatory audit reason.
type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID   string `json:"paymentID"`
	UserID      string `json:"userID"`
	ServiceYear int    `json:"serviceYear"`
	Method      string `json:"method"`
	Status      string `json:"status"`

	BaseAmount    decimal.Decimal `json:"baseAmount"`
	LateFee       decimal.Decimal `json:"lateFee"`
	WireSurcharge decimal.Decimal `json:"wireSurcharge"`
	ExtraCharges  decimal.Decimal `json:"extraCharges"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`

	WalletAmountUsed   decimal.Decimal `json:"walletAmountUsed"`
	ExternalAmountPaid decimal.Decimal `json:"externalAmountPaid"`

	ExternalTransactionRef string     `json:"externalTransactionRef,omitempty"`
	ReceiptNumber          string     `json:"receiptNumber,omitempty"`
	RejectionReason        string     `json:"rejectionReason,omitempty"`
	ResolvedBy             string     `json:"resolvedBy,omitempty"`
	ResolvedAt             *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
}

// CreatePaymentResponse pairs the stored intent with the launch plan for
// redirect channels. LaunchPlan is nil for CASH and WALLET payments.
type CreatePaymentResponse struct {
	Payment    PaymentResponse     `json:"payment"`
	LaunchPlan *upilink.LaunchPlan `json:"launchPlan,omitempty"`
}

// ListPaymentsParams holds pagination parameters for payment listings.
type ListPaymentsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListPaymentsResponse is a page of payments plus the next-page token.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:              p.PaymentID,
		UserID:                 p.UserID,
		ServiceYear:            p.ServiceYear,
		Method:                 string(p.Method),
		Status:                 string(p.Status),
		BaseAmount:             p.BaseAmount,
		LateFee:                p.LateFee,
		WireSurcharge:          p.WireSurcharge,
		ExtraCharges:           p.ExtraCharges,
		TotalAmount:            p.TotalAmount,
		WalletAmountUsed:       p.WalletAmountUsed,
		ExternalAmountPaid:     p.ExternalAmountPaid,
		ExternalTransactionRef: p.ExternalTransactionRef,
		ReceiptNumber:          p.ReceiptNumber,
		RejectionReason:        p.RejectionReason,
		ResolvedBy:             p.ResolvedBy,
		ResolvedAt:             p.ResolvedAt,
		CreatedAt:              p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of domain Payments to response DTOs.
func ToPaymentResponses(ps []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(ps))
	for i := range ps {
		responses[i] = ToPaymentResponse(&ps[i])
	}
	return responses
}
