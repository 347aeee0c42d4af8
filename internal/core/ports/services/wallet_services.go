package services

import (
	"context"

	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletReaderSvc defines read operations for wallet data
type WalletReaderSvc interface {
	// GetBalance retrieves the cached wallet balance for a user.
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)

	// ListTransactions retrieves a page of the user's ledger, newest first,
	// along with the token for the next page.
	ListTransactions(ctx context.Context, userID string, params dto.ListWalletTransactionsParams) ([]domain.WalletTransaction, *string, error)
}

// WalletWriterSvc defines write operations for wallet data
type WalletWriterSvc interface {
	// TopUp credits a user's wallet and returns the recorded ledger entry.
	TopUp(ctx context.Context, req dto.TopUpRequest, actorID string) (*domain.WalletTransaction, error)

	// Transfer atomically moves balance between two users' wallets.
	Transfer(ctx context.Context, req dto.TransferRequest, actorID string) error
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
}
