package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/savexhq/savex/internal/domain"
	"github.com/savexhq/savex/internal/usecase"
	"github.com/savexhq/savex/internal/usecase/mocks"
)

func TestUserUseCase_CreateUser(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateUserInput
		wantErr error
	}{
		{
			name: "valid",
			input: usecase.CreateUserInput{
				Email:          "a@x.com",
				Name:           "Alice",
				PIN:            "4821",
				InitialBalance: decimal.RequireFromString("200.00"),
			},
		},
		{
			name: "invalid email",
			input: usecase.CreateUserInput{
				Email: "not-an-email",
				Name:  "Alice",
				PIN:   "4821",
			},
			wantErr: domain.ErrInvalidEmail,
		},
		{
			name: "invalid pin",
			input: usecase.CreateUserInput{
				Email: "a@x.com",
				Name:  "Alice",
				PIN:   "12",
			},
			wantErr: domain.ErrInvalidPIN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := mocks.NewMockUserRepository()
			uc := usecase.NewUserUseCase(users, mocks.NewMockTransactionRepository(), nil, 0)

			user, err := uc.CreateUser(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if user.PINHash == tt.input.PIN {
				t.Fatal("PIN stored in plaintext")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(tt.input.PIN)); err != nil {
				t.Fatalf("stored hash does not match PIN: %v", err)
			}
			if !user.Balance.Equal(tt.input.InitialBalance) {
				t.Fatalf("expected balance %s, got %s", tt.input.InitialBalance, user.Balance)
			}
			if !user.BudgetReminder.IsZero() {
				t.Fatalf("expected zero budget reminder, got %s", user.BudgetReminder)
			}
		})
	}
}

func TestUserUseCase_CreateUser_Duplicate(t *testing.T) {
	users := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(users, mocks.NewMockTransactionRepository(), nil, 0)

	input := usecase.CreateUserInput{Email: "a@x.com", Name: "Alice", PIN: "4821"}
	if _, err := uc.CreateUser(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Same email with different fields still conflicts.
	input.Name = "Someone Else"
	input.PIN = "9999"
	_, err := uc.CreateUser(context.Background(), input)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserUseCase_GetUser(t *testing.T) {
	users := mocks.NewMockUserRepository()
	txns := mocks.NewMockTransactionRepository()
	uc := usecase.NewUserUseCase(users, txns, nil, 0)

	seedUser(t, users, "a@x.com", "150.25")
	if err := txns.Create(context.Background(), nil, &domain.Transaction{
		ID:        "txn-1",
		UserEmail: "a@x.com",
		Kind:      domain.KindDebit,
		Category:  "food",
		Amount:    decimal.RequireFromString("9.75"),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	profile, err := uc.GetUser(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}

	if profile.User.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %s", profile.User.Email)
	}
	if len(profile.Transactions) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(profile.Transactions))
	}

	_, err = uc.GetUser(context.Background(), "ghost@x.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUseCase_GetUser_ServedFromCache(t *testing.T) {
	users := mocks.NewMockUserRepository()
	seedUser(t, users, "a@x.com", "150.25")

	var repoReads int64
	users.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		atomic.AddInt64(&repoReads, 1)
		f := users.GetByEmailFunc
		users.GetByEmailFunc = nil
		defer func() { users.GetByEmailFunc = f }()
		return users.GetByEmail(ctx, email)
	}

	cache := mocks.NewMockCache()
	uc := usecase.NewUserUseCase(users, mocks.NewMockTransactionRepository(), cache, 30*time.Second)

	if _, err := uc.GetUser(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("first GetUser failed: %v", err)
	}
	if _, err := uc.GetUser(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("second GetUser failed: %v", err)
	}

	if got := atomic.LoadInt64(&repoReads); got != 1 {
		t.Fatalf("expected 1 repository read, got %d", got)
	}
	if cache.SetCalls != 1 {
		t.Fatalf("expected 1 cache fill, got %d", cache.SetCalls)
	}
}
