package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portsrepo "github.com/citycable/cable_collect_app/internal/core/ports/repositories"
	"github.com/citycable/cable_collect_app/internal/models"
	"github.com/citycable/cable_collect_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const receiptColumns = `receipt_id, payment_id, service_year, sequence_no, receipt_number, generated_at`

// PgxReceiptRepository is read-only: receipts are written exclusively inside
// the payment approval transaction.
type PgxReceiptRepository struct {
	BaseRepository
}

func newPgxReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepositoryFacade {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReceiptRepository implements portsrepo.ReceiptRepositoryFacade
var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

func scanReceipt(row pgx.Row) (models.Receipt, error) {
	var m models.Receipt
	err := row.Scan(
		&m.ReceiptID,
		&m.PaymentID,
		&m.ServiceYear,
		&m.SequenceNo,
		&m.ReceiptNumber,
		&m.GeneratedAt,
	)
	return m, err
}

func (r *PgxReceiptRepository) FindReceiptByPaymentID(ctx context.Context, paymentID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE payment_id = $1;`
	m, err := scanReceipt(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt for payment %s: %w", paymentID, err)
	}
	receipt := mapping.ToDomainReceipt(m)
	return &receipt, nil
}

func (r *PgxReceiptRepository) ListReceiptsByYear(ctx context.Context, serviceYear int) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE service_year = $1 ORDER BY sequence_no ASC;`
	rows, err := r.Pool.Query(ctx, query, serviceYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts for year %d: %w", serviceYear, err)
	}
	defer rows.Close()

	receipts := []domain.Receipt{}
	for rows.Next() {
		m, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		receipts = append(receipts, mapping.ToDomainReceipt(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating receipt rows: %w", rows.Err())
	}

	return receipts, nil
}
