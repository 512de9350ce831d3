package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savexhq/savex/internal/domain"
	"github.com/savexhq/savex/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a transaction inside tx. Callers hold the user row lock, so
// appends for one email are ordered and timestamps never run backwards.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (id, user_email, kind, category, amount, description, is_manual, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.UserEmail,
		string(txn.Kind),
		txn.Category,
		decimalToNumeric(txn.Amount),
		txn.Description,
		txn.IsManual,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// ListByUser returns the full log for email in append order.
func (r *TransactionRepository) ListByUser(ctx context.Context, email string) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_email, kind, category, amount, description, is_manual, created_at
		FROM transactions
		WHERE user_email = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]*domain.Transaction, 0)

	for rows.Next() {
		var (
			txn       domain.Transaction
			kind      string
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&txn.ID,
			&txn.UserEmail,
			&kind,
			&txn.Category,
			&amount,
			&txn.Description,
			&txn.IsManual,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		txn.Kind = domain.TransactionKind(kind)
		txn.Amount = numericToDecimal(amount)
		txn.CreatedAt = createdAt.Time

		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}

// DeleteByUser empties the log for email and returns the number of entries
// removed.
func (r *TransactionRepository) DeleteByUser(ctx context.Context, email string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE user_email = $1`, email)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
