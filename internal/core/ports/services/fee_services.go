package services

import (
	"context"

	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/citycable/cable_collect_app/internal/dto"
)

// FeeCalculatorSvc defines fee computation operations.
type FeeCalculatorSvc interface {
	// QuoteFee computes the full yearly fee breakdown from its components.
	QuoteFee(ctx context.Context, req dto.FeeQuoteRequest) (domain.FeeBreakdown, error)
}

// FeeSvcFacade combines all fee-related service interfaces
type FeeSvcFacade interface {
	FeeCalculatorSvc
}
