package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/savexhq/savex/internal/domain"
	"github.com/savexhq/savex/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, name, pin_hash, current_balance, budget_reminder, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		user.Email,
		user.Name,
		user.PINHash,
		decimalToNumeric(user.Balance),
		decimalToNumeric(user.BudgetReminder),
		timeToPgTimestamptz(user.CreatedAt),
		timeToPgTimestamptz(user.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrUserExists
		}

		return err
	}

	return nil
}

const userColumns = `email, name, pin_hash, current_balance, budget_reminder, created_at, updated_at`

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetByEmailForUpdate retrieves a user inside tx with a FOR UPDATE row lock.
// The lock is held until the transaction ends, serializing balance mutation
// per email without blocking other emails.
func (r *UserRepository) GetByEmailForUpdate(ctx context.Context, tx usecase.Transaction, email string) (*domain.User, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 FOR UPDATE`

	return scanUser(pgxTx.QueryRow(ctx, query, email))
}

// UpdateBalance sets the balance inside tx.
func (r *UserRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, email string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE users SET current_balance = $2, updated_at = $3 WHERE email = $1`

	tag, err := pgxTx.Exec(ctx, query, email, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// AddToBalance applies an atomic in-place increment.
func (r *UserRepository) AddToBalance(ctx context.Context, email string, delta decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE users SET current_balance = current_balance + $2, updated_at = $3 WHERE email = $1`

	tag, err := r.pool.Exec(ctx, query, email, decimalToNumeric(delta), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// SetBalance overwrites the balance directly.
func (r *UserRepository) SetBalance(ctx context.Context, email string, balance decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE users SET current_balance = $2, updated_at = $3 WHERE email = $1`

	tag, err := r.pool.Exec(ctx, query, email, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// SetBudgetReminder sets the budget threshold.
func (r *UserRepository) SetBudgetReminder(ctx context.Context, email string, amount decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE users SET budget_reminder = $2, updated_at = $3 WHERE email = $1`

	tag, err := r.pool.Exec(ctx, query, email, decimalToNumeric(amount), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Exists reports whether a user record exists for email.
func (r *UserRepository) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user                 domain.User
		balance, budget      pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&user.Email,
		&user.Name,
		&user.PINHash,
		&balance,
		&budget,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	user.Balance = numericToDecimal(balance)
	user.BudgetReminder = numericToDecimal(budget)
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
