package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portsrepo "github.com/citycable/cable_collect_app/internal/core/ports/repositories"
	"github.com/citycable/cable_collect_app/internal/models"
	"github.com/citycable/cable_collect_app/internal/utils/mapping"
	"github.com/citycable/cable_collect_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const walletTxnColumns = `transaction_id, user_id, amount, direction, balance_before, balance_after,
		reference_id, description, created_at, created_by`

// PgxWalletRepository owns the wallet ledger. Every mutation appends a
// wallet_transactions row and rewrites the cached users.wallet_balance in
// the same database transaction, holding a FOR UPDATE lock on the user row.
type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWalletRepository implements portsrepo.WalletRepositoryFacade
var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

func (r *PgxWalletRepository) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	query := `SELECT wallet_balance FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to read wallet balance for user %s: %w", userID, err)
	}
	return balance, nil
}

func (r *PgxWalletRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1 // fetch one extra to detect a next page

	baseQuery := `SELECT ` + walletTxnColumns + `
		FROM wallet_transactions
		WHERE user_id = $1`
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`

	args := []any{userID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query wallet transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	fetched := []models.WalletTransaction{}
	for rows.Next() {
		var m models.WalletTransaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.UserID,
			&m.Amount,
			&m.Direction,
			&m.BalanceBefore,
			&m.BalanceAfter,
			&m.ReferenceID,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan wallet transaction row: %w", err)
		}
		fetched = append(fetched, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating wallet transaction rows: %w", rows.Err())
	}

	var nextTokenVal *string
	results := fetched
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		results = fetched[:limit]
	}

	return mapping.ToDomainWalletTransactionSlice(results), nextTokenVal, nil
}

func (r *PgxWalletRepository) FindTransactionsByReference(ctx context.Context, referenceID string) ([]domain.WalletTransaction, error) {
	query := `SELECT ` + walletTxnColumns + `
		FROM wallet_transactions
		WHERE reference_id = $1
		ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet transactions for reference %s: %w", referenceID, err)
	}
	defer rows.Close()

	results := []models.WalletTransaction{}
	for rows.Next() {
		var m models.WalletTransaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.UserID,
			&m.Amount,
			&m.Direction,
			&m.BalanceBefore,
			&m.BalanceAfter,
			&m.ReferenceID,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction row: %w", err)
		}
		results = append(results, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating wallet transaction rows: %w", rows.Err())
	}

	return mapping.ToDomainWalletTransactionSlice(results), nil
}

// Credit adds amount to the user's wallet in one isolated transaction.
func (r *PgxWalletRepository) Credit(ctx context.Context, userID string, amount decimal.Decimal, referenceID, description, actorID string) (*domain.WalletTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	txn, err := r.CreditInTx(ctx, tx, userID, amount, referenceID, description, actorID)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return txn, nil
}

// Debit removes amount from the user's wallet in one isolated transaction.
func (r *PgxWalletRepository) Debit(ctx context.Context, userID string, amount decimal.Decimal, referenceID, description, actorID string) (*domain.WalletTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	txn, err := r.DebitInTx(ctx, tx, userID, amount, referenceID, description, actorID)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return txn, nil
}

// Transfer moves amount between two users as a debit/credit pair under one
// transaction. Rows are locked in sorted user-id order so two concurrent
// opposite transfers cannot deadlock.
func (r *PgxWalletRepository) Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal, referenceID, actorID string) error {
	if fromUserID == toUserID {
		return fmt.Errorf("%w: transfer endpoints must differ", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	first, second := fromUserID, toUserID
	if second < first {
		first, second = second, first
	}
	if _, err := lockBalance(ctx, tx, first); err != nil {
		return err
	}
	if _, err := lockBalance(ctx, tx, second); err != nil {
		return err
	}

	if _, err := r.DebitInTx(ctx, tx, fromUserID, amount, referenceID, "Transfer to wallet "+toUserID, actorID); err != nil {
		return err
	}
	if _, err := r.CreditInTx(ctx, tx, toUserID, amount, referenceID, "Transfer from wallet "+fromUserID, actorID); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// CreditInTx writes a credit leg using the caller's transaction.
func (r *PgxWalletRepository) CreditInTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, referenceID, description, actorID string) (*domain.WalletTransaction, error) {
	return r.appendLedgerEntry(ctx, tx, userID, amount, domain.DirectionCredit, referenceID, description, actorID)
}

// DebitInTx writes a debit leg using the caller's transaction. Fails with
// ErrInsufficientFunds when amount exceeds the current balance.
func (r *PgxWalletRepository) DebitInTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, referenceID, description, actorID string) (*domain.WalletTransaction, error) {
	return r.appendLedgerEntry(ctx, tx, userID, amount, domain.DirectionDebit, referenceID, description, actorID)
}

// appendLedgerEntry is the single write path of the ledger: lock the user
// row, append the entry, rewrite the cached balance. All three happen under
// the caller's transaction.
func (r *PgxWalletRepository) appendLedgerEntry(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, direction domain.TransactionDirection, referenceID, description, actorID string) (*domain.WalletTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: ledger amounts must be positive", apperrors.ErrValidation)
	}

	balanceBefore, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	var balanceAfter decimal.Decimal
	switch direction {
	case domain.DirectionCredit:
		balanceAfter = balanceBefore.Add(amount)
	case domain.DirectionDebit:
		if amount.GreaterThan(balanceBefore) {
			return nil, fmt.Errorf("debit of %s exceeds balance %s: %w", amount, balanceBefore, apperrors.ErrInsufficientFunds)
		}
		balanceAfter = balanceBefore.Sub(amount)
	default:
		return nil, fmt.Errorf("%w: unknown ledger direction %q", apperrors.ErrValidation, direction)
	}

	entry := models.WalletTransaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Amount:        amount,
		Direction:     string(direction),
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		ReferenceID:   referenceID,
		Description:   description,
		CreatedAt:     time.Now(),
		CreatedBy:     actorID,
	}

	insertQuery := `
        INSERT INTO wallet_transactions (transaction_id, user_id, amount, direction, balance_before, balance_after,
            reference_id, description, created_at, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err = tx.Exec(ctx, insertQuery,
		entry.TransactionID,
		entry.UserID,
		entry.Amount,
		entry.Direction,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.ReferenceID,
		entry.Description,
		entry.CreatedAt,
		entry.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append wallet ledger entry: %w", err)
	}

	updateQuery := `UPDATE users SET wallet_balance = $1 WHERE user_id = $2;`
	if _, err := tx.Exec(ctx, updateQuery, entry.BalanceAfter, entry.UserID); err != nil {
		return nil, fmt.Errorf("failed to rewrite cached wallet balance: %w", err)
	}

	domainEntry := mapping.ToDomainWalletTransaction(entry)
	return &domainEntry, nil
}

// lockBalance takes the FOR UPDATE lock on the user row and returns the
// cached balance as of the lock.
func lockBalance(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	query := `SELECT wallet_balance FROM users WHERE user_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("wallet owner %s: %w", userID, apperrors.ErrNotFound)
		}
		return decimal.Zero, fmt.Errorf("failed to lock wallet row for user %s: %w", userID, err)
	}
	return balance, nil
}
