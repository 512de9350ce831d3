package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/savexhq/savex/internal/domain"
)

// LedgerUseCase keeps each user's balance and transaction log consistent:
// for the normal path, balance always equals the initial balance plus credits
// minus recorded debits. OverwriteBalance and ClearHistory intentionally step
// outside that invariant; they are reconciliation operations, not bookkeeping.
type LedgerUseCase struct {
	txManager TransactionManager
	users     UserRepository
	txns      TransactionRepository
	idGen     IDGenerator
	retrier   Retrier
	cache     Cache
}

// NewLedgerUseCase creates a new LedgerUseCase. retrier and cache may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	users UserRepository,
	txns TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager: txManager,
		users:     users,
		txns:      txns,
		idGen:     idGen,
		retrier:   retrier,
		cache:     cache,
	}
}

// RecordTransactionInput represents input for recording a debit.
type RecordTransactionInput struct {
	Email       string
	Category    string
	Amount      decimal.Decimal
	Description string
	IsManual    bool
}

// RecordTransaction appends a debit to the user's log and decrements the
// balance in the same storage transaction. The user row is locked for the
// duration, so two concurrent calls for the same email can never both read a
// stale balance; calls for different emails do not contend.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := domain.ValidateCategory(input.Category); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var recorded *domain.Transaction

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		user, err := uc.users.GetByEmailForUpdate(ctx, tx, input.Email)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		txn := &domain.Transaction{
			ID:          uc.idGen.Generate(),
			UserEmail:   input.Email,
			Kind:        domain.KindDebit,
			Category:    input.Category,
			Amount:      input.Amount,
			Description: input.Description,
			IsManual:    input.IsManual,
			CreatedAt:   now,
		}

		if err := uc.txns.Create(ctx, tx, txn); err != nil {
			return err
		}

		if err := uc.users.UpdateBalance(ctx, tx, input.Email, user.ApplyDebit(input.Amount), now); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		recorded = txn

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, input.Email)

	return recorded, nil
}

// AddCredit increments the balance without appending to the log. Credits are
// therefore not auditable from the transaction history.
func (uc *LedgerUseCase) AddCredit(ctx context.Context, email string, amount decimal.Decimal) error {
	email = domain.NormalizeEmail(email)

	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}

	if err := uc.users.AddToBalance(ctx, email, amount, time.Now().UTC()); err != nil {
		return err
	}

	uc.invalidate(ctx, email)

	return nil
}

// OverwriteBalance sets the balance directly, bypassing the transaction log.
// Reconciliation escape hatch; the log-vs-balance invariant does not hold
// across this call.
func (uc *LedgerUseCase) OverwriteBalance(ctx context.Context, email string, balance decimal.Decimal) error {
	email = domain.NormalizeEmail(email)

	if err := uc.users.SetBalance(ctx, email, balance, time.Now().UTC()); err != nil {
		return err
	}

	uc.invalidate(ctx, email)

	return nil
}

// SetBudgetReminder sets the budget alert threshold. Independent of the
// ledger invariant.
func (uc *LedgerUseCase) SetBudgetReminder(ctx context.Context, email string, amount decimal.Decimal) error {
	email = domain.NormalizeEmail(email)

	if amount.IsNegative() {
		return domain.ErrInvalidAmount
	}

	if err := uc.users.SetBudgetReminder(ctx, email, amount, time.Now().UTC()); err != nil {
		return err
	}

	uc.invalidate(ctx, email)

	return nil
}

// ClearHistory empties the transaction log without touching the balance.
// History is a record, not the source of truth for the balance.
func (uc *LedgerUseCase) ClearHistory(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	exists, err := uc.users.Exists(ctx, email)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrUserNotFound
	}

	if _, err := uc.txns.DeleteByUser(ctx, email); err != nil {
		return err
	}

	uc.invalidate(ctx, email)

	return nil
}

func (uc *LedgerUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func (uc *LedgerUseCase) invalidate(ctx context.Context, email string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, profileCacheKey(email))
	}
}
