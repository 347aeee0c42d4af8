package services

import (
	"context"
	"fmt"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/platform/config"
	"github.com/shopspring/decimal"
)

// feeService computes the yearly fee breakdown. It is pure arithmetic over
// the request plus configured defaults; nothing here touches the database.
type feeService struct {
	cfg *config.Config
}

// NewFeeService creates a new instance of feeService.
func NewFeeService(cfg *config.Config) portssvc.FeeSvcFacade {
	return &feeService{cfg: cfg}
}

// QuoteFee computes the full breakdown:
//
//	wireSurcharge = wiringMeters * wiringRate
//	lateFee       = baseFee * lateFeePercent / 100 * overdueYears
//	totalAmount   = baseFee + wireSurcharge + lateFee + extraCharges
//
// A zero wiring rate or late fee percent falls back to the configured
// default; zero stays zero when no default is configured.
func (s *feeService) QuoteFee(ctx context.Context, req dto.FeeQuoteRequest) (domain.FeeBreakdown, error) {
	if req.BaseFee.IsNegative() || req.WiringMeters.IsNegative() || req.WiringRate.IsNegative() ||
		req.LateFeePercent.IsNegative() || req.ExtraCharges.IsNegative() {
		return domain.FeeBreakdown{}, fmt.Errorf("%w: fee components must not be negative", apperrors.ErrValidation)
	}
	if req.OverdueYears < 0 {
		return domain.FeeBreakdown{}, fmt.Errorf("%w: overdue years must not be negative", apperrors.ErrValidation)
	}

	wiringRate := req.WiringRate
	if wiringRate.IsZero() {
		wiringRate = s.cfg.DefaultWiringRate
	}
	lateFeePercent := req.LateFeePercent
	if lateFeePercent.IsZero() {
		lateFeePercent = s.cfg.DefaultLateFeePercent
	}

	wireSurcharge := req.WiringMeters.Mul(wiringRate)

	lateFee := decimal.Zero
	if req.OverdueYears > 0 {
		lateFee = req.BaseFee.
			Mul(lateFeePercent).
			Div(decimal.NewFromInt(100)).
			Mul(decimal.NewFromInt(int64(req.OverdueYears)))
	}

	breakdown := domain.FeeBreakdown{
		BaseAmount:    req.BaseFee,
		WireSurcharge: wireSurcharge,
		LateFee:       lateFee,
		ExtraCharges:  req.ExtraCharges,
	}
	breakdown.TotalAmount = breakdown.BaseAmount.
		Add(breakdown.WireSurcharge).
		Add(breakdown.LateFee).
		Add(breakdown.ExtraCharges)

	return breakdown, nil
}
