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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `payment_id, user_id, service_year, method, status,
		base_amount, late_fee, wire_surcharge, extra_charges, total_amount,
		wallet_amount_used, external_amount_paid, wallet_debited,
		external_transaction_ref, proof_ref, receipt_number, rejection_reason,
		resolved_by, resolved_at, created_at, created_by, last_updated_at, last_updated_by`

// receiptNumberFormat renders e.g. RCP2024001; the sequence keeps three
// digits until a year crosses a thousand receipts, then widens naturally.
const receiptNumberFormat = "RCP%d%03d"

// PgxPaymentRepository owns the payment lifecycle rows and the receipts
// issued on approval. Wallet legs are delegated to the wallet repository's
// InTx writers so the ledger invariants hold inside payment transactions.
type PgxPaymentRepository struct {
	BaseRepository
	walletRepo portsrepo.WalletRepositoryFacade
}

func newPgxPaymentRepository(pool *pgxpool.Pool, walletRepo portsrepo.WalletRepositoryFacade) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		walletRepo:     walletRepo,
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.UserID,
		&m.ServiceYear,
		&m.Method,
		&m.Status,
		&m.BaseAmount,
		&m.LateFee,
		&m.WireSurcharge,
		&m.ExtraCharges,
		&m.TotalAmount,
		&m.WalletAmountUsed,
		&m.ExternalAmountPaid,
		&m.WalletDebited,
		&m.ExternalTransactionRef,
		&m.ProofRef,
		&m.ReceiptNumber,
		&m.RejectionReason,
		&m.ResolvedBy,
		&m.ResolvedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

func (r *PgxPaymentRepository) ListPaymentsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = $1`
	orderByClause := `ORDER BY created_at DESC, payment_id DESC`

	args := []any{userID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		query += ` AND (created_at, payment_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	return r.queryPaymentPage(ctx, query, args, limit)
}

func (r *PgxPaymentRepository) ListPendingPayments(ctx context.Context, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	// Oldest first: the review queue is worked in arrival order.
	// INCOMPLETE payments never appear here.
	baseQuery := `SELECT ` + paymentColumns + ` FROM payments WHERE status = 'PENDING'`
	orderByClause := `ORDER BY created_at ASC, payment_id ASC`

	args := []any{}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		query += ` AND (created_at, payment_id) > ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	return r.queryPaymentPage(ctx, query, args, limit)
}

func (r *PgxPaymentRepository) queryPaymentPage(ctx context.Context, query string, args []any, limit int) ([]domain.Payment, *string, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	fetched := []models.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		fetched = append(fetched, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}

	var nextTokenVal *string
	results := fetched
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.PaymentID)
		nextTokenVal = &token
		results = fetched[:limit]
	}

	return mapping.ToDomainPaymentSlice(results), nextTokenVal, nil
}

// SavePayment persists a new payment intent. When applyWalletDebit is set,
// the wallet leg is debited in the same transaction, so an insufficient
// balance aborts the whole insert.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, applyWalletDebit bool) error {
	m := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
        INSERT INTO payments (` + paymentColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
    `
	_, err = tx.Exec(ctx, insertQuery,
		m.PaymentID,
		m.UserID,
		m.ServiceYear,
		m.Method,
		m.Status,
		m.BaseAmount,
		m.LateFee,
		m.WireSurcharge,
		m.ExtraCharges,
		m.TotalAmount,
		m.WalletAmountUsed,
		m.ExternalAmountPaid,
		m.WalletDebited,
		m.ExternalTransactionRef,
		m.ProofRef,
		m.ReceiptNumber,
		m.RejectionReason,
		m.ResolvedBy,
		m.ResolvedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("payment %s already exists: %w", payment.PaymentID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}

	if applyWalletDebit {
		debitAmount := payment.WalletAmountUsed
		_, err = r.walletRepo.DebitInTx(ctx, tx, payment.UserID, debitAmount, payment.PaymentID,
			fmt.Sprintf("Payment for service year %d", payment.ServiceYear), payment.CreatedBy)
		if err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// MarkReadyForReview transitions INCOMPLETE -> PENDING with one conditional
// update; there is no separate read-then-write window.
func (r *PgxPaymentRepository) MarkReadyForReview(ctx context.Context, paymentID, externalRef, proofRef, actorID string) (*domain.Payment, error) {
	query := `
        UPDATE payments
        SET status = 'PENDING', external_transaction_ref = $1, proof_ref = $2,
            last_updated_at = $3, last_updated_by = $4
        WHERE payment_id = $5 AND status = 'INCOMPLETE'
        RETURNING ` + paymentColumns + `;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, externalRef, proofRef, time.Now(), actorID, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMissedTransition(ctx, paymentID, domain.StatusIncomplete)
		}
		return nil, fmt.Errorf("failed to mark payment %s ready for review: %w", paymentID, err)
	}

	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// ApprovePayment resolves a pending payment and issues its receipt. The
// receipt slot is protected twice: a per-year advisory lock serializes
// allocators, and the (service_year, sequence_no) unique constraint backstops
// them. A constraint hit retries the whole transaction once before giving up
// with ErrAllocationConflict.
func (r *PgxPaymentRepository) ApprovePayment(ctx context.Context, paymentID, adminID string) (*domain.Payment, *domain.Receipt, error) {
	payment, receipt, err := r.approveOnce(ctx, paymentID, adminID)
	if err != nil && errors.Is(err, apperrors.ErrDuplicate) {
		payment, receipt, err = r.approveOnce(ctx, paymentID, adminID)
		if err != nil && errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, fmt.Errorf("receipt slot contention for year: %w", apperrors.ErrAllocationConflict)
		}
	}
	return payment, receipt, err
}

func (r *PgxPaymentRepository) approveOnce(ctx context.Context, paymentID, adminID string) (*domain.Payment, *domain.Receipt, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()

	// Conditional flip first: any state but PENDING leaves zero rows and
	// the transaction never touches the ledger or the receipt sequence.
	flipQuery := `
        UPDATE payments
        SET status = 'APPROVED', resolved_by = $1, resolved_at = $2,
            last_updated_at = $2, last_updated_by = $1
        WHERE payment_id = $3 AND status = 'PENDING'
        RETURNING ` + paymentColumns + `;`
	m, err := scanPayment(tx.QueryRow(ctx, flipQuery, adminID, now, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, r.classifyMissedTransition(ctx, paymentID, domain.StatusPending)
		}
		return nil, nil, fmt.Errorf("failed to approve payment %s: %w", paymentID, err)
	}
	payment := mapping.ToDomainPayment(m)

	// Wallet legs are normally debited at creation; finalize any that were
	// deferred so an approved payment is always settled in the ledger.
	if payment.Method.UsesWalletLeg() && !payment.WalletDebited {
		_, err = r.walletRepo.DebitInTx(ctx, tx, payment.UserID, payment.WalletAmountUsed, payment.PaymentID,
			fmt.Sprintf("Payment for service year %d", payment.ServiceYear), adminID)
		if err != nil {
			return nil, nil, err
		}
		if _, err := tx.Exec(ctx, `UPDATE payments SET wallet_debited = TRUE WHERE payment_id = $1;`, paymentID); err != nil {
			return nil, nil, fmt.Errorf("failed to finalize wallet debit flag: %w", err)
		}
		payment.WalletDebited = true
	}

	receipt, err := allocateReceipt(ctx, tx, &payment, now)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE payments SET receipt_number = $1 WHERE payment_id = $2;`,
		receipt.ReceiptNumber, paymentID); err != nil {
		return nil, nil, fmt.Errorf("failed to stamp receipt number on payment: %w", err)
	}
	payment.ReceiptNumber = receipt.ReceiptNumber

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &payment, receipt, nil
}

// allocateReceipt hands out the next sequence number for the payment's
// service year under a per-year advisory lock held until commit.
func allocateReceipt(ctx context.Context, tx pgx.Tx, payment *domain.Payment, now time.Time) (*domain.Receipt, error) {
	lockQuery := `SELECT pg_advisory_xact_lock(hashtext('receipt_year_' || $1::text));`
	if _, err := tx.Exec(ctx, lockQuery, payment.ServiceYear); err != nil {
		return nil, fmt.Errorf("failed to take receipt-year lock: %w", err)
	}

	var nextSeq int
	seqQuery := `SELECT COALESCE(MAX(sequence_no), 0) + 1 FROM receipts WHERE service_year = $1;`
	if err := tx.QueryRow(ctx, seqQuery, payment.ServiceYear).Scan(&nextSeq); err != nil {
		return nil, fmt.Errorf("failed to read next receipt sequence: %w", err)
	}

	receipt := models.Receipt{
		ReceiptID:     uuid.NewString(),
		PaymentID:     payment.PaymentID,
		ServiceYear:   payment.ServiceYear,
		SequenceNo:    nextSeq,
		ReceiptNumber: fmt.Sprintf(receiptNumberFormat, payment.ServiceYear, nextSeq),
		GeneratedAt:   now,
	}

	insertQuery := `
        INSERT INTO receipts (receipt_id, payment_id, service_year, sequence_no, receipt_number, generated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := tx.Exec(ctx, insertQuery,
		receipt.ReceiptID,
		receipt.PaymentID,
		receipt.ServiceYear,
		receipt.SequenceNo,
		receipt.ReceiptNumber,
		receipt.GeneratedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, fmt.Errorf("receipt %s already allocated: %w", receipt.ReceiptNumber, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert receipt: %w", err)
	}

	domainReceipt := mapping.ToDomainReceipt(receipt)
	return &domainReceipt, nil
}

// RejectPayment resolves a pending payment as REJECTED and reverses any
// applied wallet leg with a compensating credit in the same transaction.
func (r *PgxPaymentRepository) RejectPayment(ctx context.Context, paymentID, adminID, reason string) (*domain.Payment, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()
	flipQuery := `
        UPDATE payments
        SET status = 'REJECTED', rejection_reason = $1, resolved_by = $2, resolved_at = $3,
            last_updated_at = $3, last_updated_by = $2
        WHERE payment_id = $4 AND status = 'PENDING'
        RETURNING ` + paymentColumns + `;`
	m, err := scanPayment(tx.QueryRow(ctx, flipQuery, reason, adminID, now, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMissedTransition(ctx, paymentID, domain.StatusPending)
		}
		return nil, fmt.Errorf("failed to reject payment %s: %w", paymentID, err)
	}
	payment := mapping.ToDomainPayment(m)

	if payment.WalletDebited && payment.WalletAmountUsed.IsPositive() {
		_, err = r.walletRepo.CreditInTx(ctx, tx, payment.UserID, payment.WalletAmountUsed, payment.PaymentID,
			fmt.Sprintf("Refund for rejected payment, service year %d", payment.ServiceYear), adminID)
		if err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &payment, nil
}

// classifyMissedTransition distinguishes a missing payment from one in the
// wrong state after a conditional update matched zero rows.
func (r *PgxPaymentRepository) classifyMissedTransition(ctx context.Context, paymentID string, wanted domain.PaymentStatus) error {
	var current string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM payments WHERE payment_id = $1;`, paymentID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read payment %s status: %w", paymentID, err)
	}
	return fmt.Errorf("payment %s is %s, wanted %s: %w", paymentID, current, wanted, apperrors.ErrInvalidStateTransition)
}
