package models

import "time"

// Receipt is the receipts table row.
type Receipt struct {
	ReceiptID     string    `db:"receipt_id"`
	PaymentID     string    `db:"payment_id"`
	ServiceYear   int       `db:"service_year"`
	SequenceNo    int       `db:"sequence_no"`
	ReceiptNumber string    `db:"receipt_number"`
	GeneratedAt   time.Time `db:"generated_at"`
}
