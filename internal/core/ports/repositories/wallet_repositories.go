package repositories

import (
	"context"

	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for the wallet ledger
type WalletReader interface {
	// GetBalance returns the cached wallet balance for a user.
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)

	// ListTransactionsByUser retrieves a keyset-paginated wallet statement,
	// newest first. Returns the entries, a token for the next page, and an error.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error)

	// FindTransactionsByReference retrieves the ledger entries linked to a
	// payment or top-up reference.
	FindTransactionsByReference(ctx context.Context, referenceID string) ([]domain.WalletTransaction, error)
}

// WalletWriter defines the atomic mutation operations of the ledger. Each
// call is one isolated database transaction: the ledger row and the cached
// balance are written together or not at all.
type WalletWriter interface {
	// Credit adds amount to the user's wallet.
	Credit(ctx context.Context, userID string, amount decimal.Decimal, referenceID, description, actorID string) (*domain.WalletTransaction, error)

	// Debit removes amount from the user's wallet. Fails with
	// ErrInsufficientFunds when amount exceeds the current balance; no
	// rows are written in that case.
	Debit(ctx context.Context, userID string, amount decimal.Decimal, referenceID, description, actorID string) (*domain.WalletTransaction, error)

	// Transfer moves amount between two users as a debit/credit pair under
	// one transaction; either both legs commit or neither does.
	Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal, referenceID, actorID string) error
}

// WalletTxWriter exposes the ledger legs for composition into a larger
// transaction owned by the caller (payment approval and rejection).
type WalletTxWriter interface {
	// CreditInTx writes a credit leg using the caller's transaction.
	CreditInTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, referenceID, description, actorID string) (*domain.WalletTransaction, error)

	// DebitInTx writes a debit leg using the caller's transaction.
	DebitInTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, referenceID, description, actorID string) (*domain.WalletTransaction, error)
}

// WalletRepositoryFacade combines all wallet-ledger repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletTxWriter
}
