package pgsql

import (
	portsrepo "github.com/citycable/cable_collect_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	walletRepo := newPgxWalletRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool, walletRepo)
	receiptRepo := newPgxReceiptRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:    userRepo,
		WalletRepo:  walletRepo,
		PaymentRepo: paymentRepo,
		ReceiptRepo: receiptRepo,
	}
}
