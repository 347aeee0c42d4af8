package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portsrepo "github.com/citycable/cable_collect_app/internal/core/ports/repositories"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// walletService fronts the ledger repository. Balance math never happens
// here; the repository owns the ledger-append plus cache-rewrite transaction.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	events     portssvc.EventPublisherSvc
}

// NewWalletService creates a new instance of walletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, events portssvc.EventPublisherSvc) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		events:     events,
	}
}

// GetBalance retrieves the cached wallet balance for a user.
func (s *walletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	balance, err := s.walletRepo.GetBalance(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to get wallet balance", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return decimal.Zero, err
	}
	return balance, nil
}

// ListTransactions retrieves a page of the user's ledger, newest first.
func (s *walletService) ListTransactions(ctx context.Context, userID string, params dto.ListWalletTransactionsParams) ([]domain.WalletTransaction, *string, error) {
	limit := clampLimit(params.Limit)

	transactions, nextToken, err := s.walletRepo.ListTransactionsByUser(ctx, userID, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list wallet transactions", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	if transactions == nil {
		transactions = []domain.WalletTransaction{}
	}
	return transactions, nextToken, nil
}

// TopUp credits a user's wallet with collected cash. Only collectors and
// admins may record top-ups.
func (s *walletService) TopUp(ctx context.Context, req dto.TopUpRequest, actorID string) (*domain.WalletTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: top-up amount must be positive", apperrors.ErrValidation)
	}

	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanCollect() {
		return nil, fmt.Errorf("%w: role %s cannot record top-ups", apperrors.ErrForbidden, actor.Role)
	}

	// Top-ups have no payment to reference, so they get their own id.
	referenceID := "TOPUP-" + uuid.NewString()
	description := req.Description
	if description == "" {
		description = "Wallet top-up"
	}

	txn, err := s.walletRepo.Credit(ctx, req.UserID, req.Amount, referenceID, description, actorID)
	if err != nil {
		logger.Error("Failed to credit wallet", slog.String("error", err.Error()), slog.String("user_id", req.UserID))
		return nil, err
	}

	logger.Info("Wallet topped up", slog.String("user_id", req.UserID), slog.String("amount", req.Amount.String()))
	if s.events != nil {
		s.events.Publish(ctx, actorID, "wallet_topup", map[string]any{
			"user_id": req.UserID,
			"amount":  req.Amount.String(),
		})
	}
	return txn, nil
}

// Transfer atomically moves balance between two users' wallets.
func (s *walletService) Transfer(ctx context.Context, req dto.TransferRequest, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.FromUserID == req.ToUserID {
		return fmt.Errorf("%w: cannot transfer to the same wallet", apperrors.ErrValidation)
	}

	// Only the wallet owner or a collector may move money out of a wallet.
	if req.FromUserID != actorID {
		actor, err := s.userRepo.FindUserByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.Role.CanCollect() {
			return fmt.Errorf("%w: cannot transfer from another user's wallet", apperrors.ErrForbidden)
		}
	}

	referenceID := "TRANSFER-" + uuid.NewString()
	err := s.walletRepo.Transfer(ctx, req.FromUserID, req.ToUserID, req.Amount, referenceID, actorID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Error("Failed to transfer between wallets", slog.String("error", err.Error()),
				slog.String("from_user_id", req.FromUserID), slog.String("to_user_id", req.ToUserID))
		}
		return err
	}

	logger.Info("Wallet transfer completed", slog.String("from_user_id", req.FromUserID),
		slog.String("to_user_id", req.ToUserID), slog.String("amount", req.Amount.String()))
	if s.events != nil {
		s.events.Publish(ctx, actorID, "wallet_transfer", map[string]any{
			"from_user_id": req.FromUserID,
			"to_user_id":   req.ToUserID,
			"amount":       req.Amount.String(),
		})
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
