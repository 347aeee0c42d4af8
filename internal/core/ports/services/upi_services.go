package services

import (
	"context"

	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/citycable/cable_collect_app/internal/utils/upilink"
)

// UPIRedirectSvc builds launch plans for the external payment leg.
type UPIRedirectSvc interface {
	// BuildLaunchPlan assembles the ordered app-launch options and manual
	// fallback instructions for a payment's external amount.
	BuildLaunchPlan(ctx context.Context, payment *domain.Payment) (*upilink.LaunchPlan, error)
}

// UPISvcFacade combines all UPI-related service interfaces
type UPISvcFacade interface {
	UPIRedirectSvc
}
