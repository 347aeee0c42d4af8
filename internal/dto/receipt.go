package dto

import (
	"time"

	"github.com/citycable/cable_collect_app/internal/core/domain"
)

// ReceiptResponse defines the data returned for an issued receipt.
type ReceiptResponse struct {
	ReceiptID     string    `json:"receiptID"`
	PaymentID     string    `json:"paymentID"`
	ServiceYear   int       `json:"serviceYear"`
	SequenceNo    int       `json:"sequenceNo"`
	ReceiptNumber string    `json:"receiptNumber"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// ListReceiptsResponse is a service year's receipts in sequence order.
type ListReceiptsResponse struct {
	ServiceYear int               `json:"serviceYear"`
	Receipts    []ReceiptResponse `json:"receipts"`
}

// ToReceiptResponse converts a domain Receipt to its response DTO.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:     r.ReceiptID,
		PaymentID:     r.PaymentID,
		ServiceYear:   r.ServiceYear,
		SequenceNo:    r.SequenceNo,
		ReceiptNumber: r.ReceiptNumber,
		GeneratedAt:   r.GeneratedAt,
	}
}

// ToReceiptResponses converts a slice of domain Receipts to response DTOs.
func ToReceiptResponses(rs []domain.Receipt) []ReceiptResponse {
	responses := make([]ReceiptResponse, len(rs))
	for i := range rs {
		responses[i] = ToReceiptResponse(&rs[i])
	}
	return responses
}
