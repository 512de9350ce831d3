package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/savexhq/savex/internal/domain"
)

// UserUseCase handles account creation and profile reads.
type UserUseCase struct {
	users    UserRepository
	txns     TransactionRepository
	cache    Cache
	cacheTTL time.Duration
}

// NewUserUseCase creates a new UserUseCase. cache may be nil to disable the
// read-through profile cache.
func NewUserUseCase(users UserRepository, txns TransactionRepository, cache Cache, cacheTTL time.Duration) *UserUseCase {
	return &UserUseCase{
		users:    users,
		txns:     txns,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Email          string
	Name           string
	PIN            string
	InitialBalance decimal.Decimal
}

// CreateUser creates a new user with a hashed PIN. The plaintext PIN is never
// stored.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePIN(input.PIN); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:          input.Email,
		Name:           input.Name,
		PINHash:        string(hash),
		Balance:        input.InitialBalance,
		BudgetReminder: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UserProfile is a user record with its ordered transaction log.
type UserProfile struct {
	User         *domain.User
	Transactions []*domain.Transaction
}

// GetUser returns the profile for email, serving repeated reads from the
// cache until a mutation invalidates it.
func (uc *UserUseCase) GetUser(ctx context.Context, email string) (*UserProfile, error) {
	email = domain.NormalizeEmail(email)

	if uc.cache != nil {
		if cached, ok, err := uc.cache.Get(ctx, profileCacheKey(email)); err == nil && ok {
			var profile UserProfile
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	txns, err := uc.txns.ListByUser(ctx, email)
	if err != nil {
		return nil, err
	}

	profile := &UserProfile{User: user, Transactions: txns}

	if uc.cache != nil {
		if encoded, err := json.Marshal(profile); err == nil {
			_ = uc.cache.Set(ctx, profileCacheKey(email), string(encoded), uc.cacheTTL)
		}
	}

	return profile, nil
}

func profileCacheKey(email string) string {
	return "user:" + email
}
