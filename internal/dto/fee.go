package dto

import (
	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeeQuoteRequest carries the inputs of a fee computation.
type FeeQuoteRequest struct {
	BaseFee        decimal.Decimal `form:"baseFee" json:"baseFee" binding:"required"`
	WiringMeters   decimal.Decimal `form:"wiringMeters" json:"wiringMeters"`
	WiringRate     decimal.Decimal `form:"wiringRate" json:"wiringRate"`
	LateFeePercent decimal.Decimal `form:"lateFeePercent" json:"lateFeePercent"`
	OverdueYears   int             `form:"overdueYears" json:"overdueYears"`
	ExtraCharges   decimal.Decimal `form:"extraCharges" json:"extraCharges"`
}

// FeeQuoteResponse is the computed breakdown returned to the caller.
type FeeQuoteResponse struct {
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	WireSurcharge decimal.Decimal `json:"wireSurcharge"`
	LateFee       decimal.Decimal `json:"lateFee"`
	ExtraCharges  decimal.Decimal `json:"extraCharges"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// ToFeeQuoteResponse converts a domain FeeBreakdown to its response DTO.
func ToFeeQuoteResponse(b domain.FeeBreakdown) FeeQuoteResponse {
	return FeeQuoteResponse{
		BaseAmount:    b.BaseAmount,
		WireSurcharge: b.WireSurcharge,
		LateFee:       b.LateFee,
		ExtraCharges:  b.ExtraCharges,
		TotalAmount:   b.TotalAmount,
	}
}
