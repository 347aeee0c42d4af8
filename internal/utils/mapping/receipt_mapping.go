package mapping

import (
	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/citycable/cable_collect_app/internal/models"
)

// ToDomainReceipt converts a model Receipt to a domain Receipt
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:     m.ReceiptID,
		PaymentID:     m.PaymentID,
		ServiceYear:   m.ServiceYear,
		SequenceNo:    m.SequenceNo,
		ReceiptNumber: m.ReceiptNumber,
		GeneratedAt:   m.GeneratedAt,
	}
}

// ToModelReceipt converts a domain Receipt to a model Receipt
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:     d.ReceiptID,
		PaymentID:     d.PaymentID,
		ServiceYear:   d.ServiceYear,
		SequenceNo:    d.SequenceNo,
		ReceiptNumber: d.ReceiptNumber,
		GeneratedAt:   d.GeneratedAt,
	}
}
