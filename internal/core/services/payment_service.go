package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portsrepo "github.com/citycable/cable_collect_app/internal/core/ports/repositories"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/middleware"
	"github.com/citycable/cable_collect_app/internal/utils/upilink"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// minServiceYear guards against typo years in payment intents.
const minServiceYear = 2000

// paymentService drives the payment lifecycle. All multi-row state changes
// (wallet legs, receipt issuance) happen inside the repository's transactions;
// this layer validates, authorizes, and sequences them.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	receiptRepo portsrepo.ReceiptRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	feeSvc      portssvc.FeeSvcFacade
	upiSvc      portssvc.UPISvcFacade
	events      portssvc.EventPublisherSvc
}

// NewPaymentService creates a new instance of paymentService.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	receiptRepo portsrepo.ReceiptRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	feeSvc portssvc.FeeSvcFacade,
	upiSvc portssvc.UPISvcFacade,
	events portssvc.EventPublisherSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
		feeSvc:      feeSvc,
		upiSvc:      upiSvc,
		events:      events,
	}
}

// GetPaymentByID retrieves a specific payment by its unique identifier.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

// ListPaymentsByUser retrieves a page of one user's payments, newest first.
func (s *paymentService) ListPaymentsByUser(ctx context.Context, userID string, params dto.ListPaymentsParams) ([]domain.Payment, *string, error) {
	payments, nextToken, err := s.paymentRepo.ListPaymentsByUser(ctx, userID, clampLimit(params.Limit), params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list payments", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nextToken, nil
}

// ListPendingPayments retrieves the admin review queue, oldest first.
func (s *paymentService) ListPendingPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, *string, error) {
	payments, nextToken, err := s.paymentRepo.ListPendingPayments(ctx, clampLimit(params.Limit), params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list pending payments", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nextToken, nil
}

// CreatePayment records a new payment intent.
//
// Channel rules:
//   - CASH: entered by a collector, goes straight to PENDING.
//   - WALLET: the full total is debited from the wallet immediately; goes to
//     PENDING (there is nothing external left to confirm).
//   - EXTERNAL_REDIRECT: starts INCOMPLETE unless the external reference and
//     proof arrive with the request.
//   - COMBINED: the wallet leg is debited immediately; the external leg
//     follows the redirect rules.
//
// The wallet debit and the payment insert share one database transaction, so
// an insufficient balance leaves nothing behind.
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actorID string) (*domain.Payment, *upilink.LaunchPlan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	method := domain.PaymentMethod(req.Method)
	if !method.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.Method)
	}
	if req.ServiceYear < minServiceYear || req.ServiceYear > time.Now().Year()+1 {
		return nil, nil, fmt.Errorf("%w: service year %d out of range", apperrors.ErrValidation, req.ServiceYear)
	}

	targetUserID := req.UserID
	if targetUserID == "" {
		targetUserID = actorID
	}

	// Paying for someone else (cash entry at the door) needs collect rights.
	if targetUserID != actorID || method == domain.MethodCash {
		actor, err := s.userRepo.FindUserByID(ctx, actorID)
		if err != nil {
			return nil, nil, err
		}
		if targetUserID != actorID && !actor.Role.CanCollect() {
			return nil, nil, fmt.Errorf("%w: cannot create payments for another user", apperrors.ErrForbidden)
		}
		if method == domain.MethodCash && !actor.Role.CanCollect() {
			return nil, nil, fmt.Errorf("%w: cash payments are entered by collectors", apperrors.ErrForbidden)
		}
	}

	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return nil, nil, err
	}

	breakdown, err := s.feeSvc.QuoteFee(ctx, req.Fee)
	if err != nil {
		return nil, nil, err
	}

	walletUsed, externalPaid, err := resolveSplit(method, breakdown.TotalAmount, req)
	if err != nil {
		return nil, nil, err
	}

	status := domain.StatusPending
	if method.UsesExternalLeg() && (req.ExternalTransactionRef == "" || req.ProofRef == "") {
		status = domain.StatusIncomplete
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:              uuid.NewString(),
		UserID:                 targetUserID,
		ServiceYear:            req.ServiceYear,
		Method:                 method,
		Status:                 status,
		BaseAmount:             breakdown.BaseAmount,
		LateFee:                breakdown.LateFee,
		WireSurcharge:          breakdown.WireSurcharge,
		ExtraCharges:           breakdown.ExtraCharges,
		TotalAmount:            breakdown.TotalAmount,
		WalletAmountUsed:       walletUsed,
		ExternalAmountPaid:     externalPaid,
		WalletDebited:          method.UsesWalletLeg(),
		ExternalTransactionRef: req.ExternalTransactionRef,
		ProofRef:               req.ProofRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment, method.UsesWalletLeg()); err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("payment_id", payment.PaymentID))
		}
		return nil, nil, err
	}

	logger.Info("Payment created", slog.String("payment_id", payment.PaymentID),
		slog.String("method", string(method)), slog.String("status", string(status)),
		slog.String("total", payment.TotalAmount.String()))

	var plan *upilink.LaunchPlan
	if method.UsesExternalLeg() {
		plan, err = s.upiSvc.BuildLaunchPlan(ctx, &payment)
		if err != nil {
			// The intent is already stored; the caller can retry the
			// redirect or fall back to manual payment.
			logger.Warn("Launch plan unavailable for stored payment", slog.String("error", err.Error()),
				slog.String("payment_id", payment.PaymentID))
			plan = nil
		}
	}

	if s.events != nil {
		s.events.Publish(ctx, actorID, "payment_created", map[string]any{
			"payment_id":   payment.PaymentID,
			"method":       string(method),
			"status":       string(status),
			"service_year": payment.ServiceYear,
			"total":        payment.TotalAmount.String(),
		})
	}
	return &payment, plan, nil
}

// MarkReadyForReview attaches the external confirmation and moves an
// INCOMPLETE payment to PENDING.
func (s *paymentService) MarkReadyForReview(ctx context.Context, paymentID string, req dto.MarkReadyForReviewRequest, actorID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actorID {
		actor, err := s.userRepo.FindUserByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if !actor.Role.CanCollect() {
			return nil, fmt.Errorf("%w: not your payment", apperrors.ErrForbidden)
		}
	}

	payment, err := s.paymentRepo.MarkReadyForReview(ctx, paymentID, req.ExternalTransactionRef, req.ProofRef, actorID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to mark payment ready for review", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	logger.Info("Payment ready for review", slog.String("payment_id", paymentID))
	if s.events != nil {
		s.events.Publish(ctx, actorID, "payment_ready_for_review", map[string]any{
			"payment_id": paymentID,
		})
	}
	return payment, nil
}

// ApprovePayment confirms a pending payment and issues its receipt.
func (s *paymentService) ApprovePayment(ctx context.Context, paymentID string, adminID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireResolver(ctx, adminID); err != nil {
		return nil, err
	}

	payment, receipt, err := s.paymentRepo.ApprovePayment(ctx, paymentID, adminID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) &&
			!errors.Is(err, apperrors.ErrNotFound) &&
			!errors.Is(err, apperrors.ErrAllocationConflict) {
			logger.Error("Failed to approve payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	logger.Info("Payment approved", slog.String("payment_id", paymentID),
		slog.String("receipt_number", receipt.ReceiptNumber))
	if s.events != nil {
		s.events.Publish(ctx, adminID, "payment_approved", map[string]any{
			"payment_id":     paymentID,
			"receipt_number": receipt.ReceiptNumber,
			"service_year":   receipt.ServiceYear,
		})
	}
	return payment, nil
}

// RejectPayment declines a pending payment, refunding any wallet leg.
func (s *paymentService) RejectPayment(ctx context.Context, paymentID string, adminID string, req dto.RejectPaymentRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}
	if err := s.requireResolver(ctx, adminID); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.RejectPayment(ctx, paymentID, adminID, req.Reason)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to reject payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	logger.Info("Payment rejected", slog.String("payment_id", paymentID), slog.String("reason", req.Reason))
	if s.events != nil {
		s.events.Publish(ctx, adminID, "payment_rejected", map[string]any{
			"payment_id": paymentID,
			"reason":     req.Reason,
		})
	}
	return payment, nil
}

// GetReceiptByPaymentID retrieves the receipt issued for an approved payment.
func (s *paymentService) GetReceiptByPaymentID(ctx context.Context, paymentID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByPaymentID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find receipt", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return receipt, nil
}

// ListReceiptsByYear retrieves a service year's receipts in sequence order.
func (s *paymentService) ListReceiptsByYear(ctx context.Context, serviceYear int) ([]domain.Receipt, error) {
	receipts, err := s.receiptRepo.ListReceiptsByYear(ctx, serviceYear)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list receipts", slog.String("error", err.Error()), slog.Int("service_year", serviceYear))
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, nil
}

func (s *paymentService) requireResolver(ctx context.Context, adminID string) error {
	admin, err := s.userRepo.FindUserByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !admin.Role.CanResolve() {
		return fmt.Errorf("%w: role %s cannot resolve payments", apperrors.ErrForbidden, admin.Role)
	}
	return nil
}

// resolveSplit derives the wallet/external amounts for each channel and
// validates the COMBINED split against the computed total.
func resolveSplit(method domain.PaymentMethod, total decimal.Decimal, req dto.CreatePaymentRequest) (decimal.Decimal, decimal.Decimal, error) {
	switch method {
	case domain.MethodWallet:
		return total, decimal.Zero, nil
	case domain.MethodUPIRedirect:
		return decimal.Zero, total, nil
	case domain.MethodCombined:
		if req.WalletAmountUsed.LessThanOrEqual(decimal.Zero) || req.ExternalAmountPaid.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: combined payments need positive wallet and external amounts", apperrors.ErrValidation)
		}
		if !req.WalletAmountUsed.Add(req.ExternalAmountPaid).Equal(total) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: split %s + %s does not equal total %s",
				apperrors.ErrValidation, req.WalletAmountUsed, req.ExternalAmountPaid, total)
		}
		return req.WalletAmountUsed, req.ExternalAmountPaid, nil
	default: // CASH
		return decimal.Zero, decimal.Zero, nil
	}
}
