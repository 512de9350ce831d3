package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/savexhq/savex/internal/domain"
)

// UserRepository defines data access for user records.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the email
	// is already taken.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByEmailForUpdate locks the user row for the duration of tx, giving
	// per-email serialization of balance mutation.
	GetByEmailForUpdate(ctx context.Context, tx Transaction, email string) (*domain.User, error)
	UpdateBalance(ctx context.Context, tx Transaction, email string, balance decimal.Decimal, updatedAt time.Time) error
	// AddToBalance applies an atomic in-place increment outside any explicit
	// transaction.
	AddToBalance(ctx context.Context, email string, delta decimal.Decimal, updatedAt time.Time) error
	SetBalance(ctx context.Context, email string, balance decimal.Decimal, updatedAt time.Time) error
	SetBudgetReminder(ctx context.Context, email string, amount decimal.Decimal, updatedAt time.Time) error
	Exists(ctx context.Context, email string) (bool, error)
}

// TransactionRepository defines data access for the spending log.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByUser(ctx context.Context, email string) ([]*domain.Transaction, error)
	DeleteByUser(ctx context.Context, email string) (int64, error)
}

// UserChecker reports whether a user record exists for an email.
type UserChecker interface {
	Exists(ctx context.Context, email string) (bool, error)
}

// OTPStore is keyed ephemeral storage for verification codes.
type OTPStore interface {
	// Put stores or overwrites the code for email with the given lifetime.
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// TakeIfMatch atomically removes the stored code iff it equals candidate.
	// Returns false when there is no entry, it has expired, or it differs.
	TakeIfMatch(ctx context.Context, email, candidate string) (bool, error)
	Delete(ctx context.Context, email string) error
}

// Mailer delivers a verification code to an email address.
type Mailer interface {
	SendCode(ctx context.Context, email, code string) error
}

// TokenIssuer mints a session token proving ownership of an email.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines read-through caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
