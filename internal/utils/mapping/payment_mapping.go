package mapping

import (
	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/citycable/cable_collect_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:              d.PaymentID,
		UserID:                 d.UserID,
		ServiceYear:            d.ServiceYear,
		Method:                 string(d.Method),
		Status:                 string(d.Status),
		BaseAmount:             d.BaseAmount,
		LateFee:                d.LateFee,
		WireSurcharge:          d.WireSurcharge,
		ExtraCharges:           d.ExtraCharges,
		TotalAmount:            d.TotalAmount,
		WalletAmountUsed:       d.WalletAmountUsed,
		ExternalAmountPaid:     d.ExternalAmountPaid,
		WalletDebited:          d.WalletDebited,
		ExternalTransactionRef: d.ExternalTransactionRef,
		ProofRef:               d.ProofRef,
		ReceiptNumber:          d.ReceiptNumber,
		RejectionReason:        d.RejectionReason,
		ResolvedBy:             d.ResolvedBy,
		ResolvedAt:             d.ResolvedAt,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:              m.PaymentID,
		UserID:                 m.UserID,
		ServiceYear:            m.ServiceYear,
		Method:                 domain.PaymentMethod(m.Method),
		Status:                 domain.PaymentStatus(m.Status),
		BaseAmount:             m.BaseAmount,
		LateFee:                m.LateFee,
		WireSurcharge:          m.WireSurcharge,
		ExtraCharges:           m.ExtraCharges,
		TotalAmount:            m.TotalAmount,
		WalletAmountUsed:       m.WalletAmountUsed,
		ExternalAmountPaid:     m.ExternalAmountPaid,
		WalletDebited:          m.WalletDebited,
		ExternalTransactionRef: m.ExternalTransactionRef,
		ProofRef:               m.ProofRef,
		ReceiptNumber:          m.ReceiptNumber,
		RejectionReason:        m.RejectionReason,
		ResolvedBy:             m.ResolvedBy,
		ResolvedAt:             m.ResolvedAt,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
