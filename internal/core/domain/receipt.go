package domain

import "time"

// Receipt records the year-scoped sequential number issued when a payment is
// approved. One receipt per payment; SequenceNo is unique within ServiceYear
// and strictly increasing in approval order.
type Receipt struct {
	ReceiptID     string    `json:"receiptID"` // Primary Key (UUID)
	PaymentID     string    `json:"paymentID"` // 1:1 with Payment
	ServiceYear   int       `json:"serviceYear"`
	SequenceNo    int       `json:"sequenceNo"`
	ReceiptNumber string    `json:"receiptNumber"` // e.g. RCP2024001
	GeneratedAt   time.Time `json:"generatedAt"`
}
