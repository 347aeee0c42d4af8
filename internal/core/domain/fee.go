package domain

import "github.com/shopspring/decimal"

// FeeBreakdown is the result of the fee computation for one service year.
// TotalAmount always equals BaseAmount + LateFee + WireSurcharge + ExtraCharges.
type FeeBreakdown struct {
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	WireSurcharge decimal.Decimal `json:"wireSurcharge"`
	LateFee       decimal.Decimal `json:"lateFee"`
	ExtraCharges  decimal.Decimal `json:"extraCharges"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}
