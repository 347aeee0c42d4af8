package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/middleware"
	"github.com/citycable/cable_collect_app/internal/platform/config"
	"github.com/citycable/cable_collect_app/internal/utils/upilink"
)

// refPrefix keeps truncated references recognisable as ours.
const refPrefix = "CC"

// upiService builds deep-link launch plans from the configured payee identity.
type upiService struct {
	cfg *config.Config
}

// NewUPIService creates a new instance of upiService.
func NewUPIService(cfg *config.Config) portssvc.UPISvcFacade {
	return &upiService{cfg: cfg}
}

// BuildLaunchPlan assembles the launch-and-degrade sequence for the external
// leg of a payment. A missing payee VPA degrades to a manual-only plan
// instead of failing the payment flow.
func (s *upiService) BuildLaunchPlan(ctx context.Context, payment *domain.Payment) (*upilink.LaunchPlan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !payment.Method.UsesExternalLeg() {
		return nil, fmt.Errorf("%w: channel %s has no external leg", apperrors.ErrValidation, payment.Method)
	}

	amount := payment.TotalAmount
	if payment.Method == domain.MethodCombined {
		amount = payment.ExternalAmountPaid
	}

	createdAt := payment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	payee := upilink.Payee{
		VPA:          s.cfg.UPIPayeeVPA,
		Name:         s.cfg.UPIPayeeName,
		MerchantCode: s.cfg.UPIMerchantCode,
		Currency:     "INR",
	}
	req := upilink.Request{
		TransactionID:  upilink.BuildReference(refPrefix, payment.PaymentID, createdAt),
		TransactionRef: upilink.BuildReference(refPrefix+"PAY-", payment.PaymentID, createdAt),
		Note:           fmt.Sprintf("Cable fee %d", payment.ServiceYear),
		Amount:         amount,
	}

	plan, err := upilink.BuildLaunchPlan(payee, req)
	if err != nil {
		if errors.Is(err, upilink.ErrMissingPayee) {
			// Manual instructions still let the subscriber pay by hand.
			logger.Warn("Payee VPA not configured, degrading to manual instructions",
				slog.String("payment_id", payment.PaymentID))
			return &plan, nil
		}
		logger.Error("Failed to build launch plan", slog.String("error", err.Error()),
			slog.String("payment_id", payment.PaymentID))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalRedirectUnavailable, err)
	}

	return &plan, nil
}
