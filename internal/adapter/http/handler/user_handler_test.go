package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/savexhq/savex/internal/adapter/http/dto"
	"github.com/savexhq/savex/internal/domain"
	"github.com/savexhq/savex/internal/usecase"
)

type userServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	getFn    func(ctx context.Context, email string) (*usecase.UserProfile, error)
}

func (s *userServiceStub) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *userServiceStub) GetUser(ctx context.Context, email string) (*usecase.UserProfile, error) {
	return s.getFn(ctx, email)
}

func TestUserHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateUserInput
	handler := NewUserHandler(&userServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
			captured = input
			return &domain.User{Email: input.Email, Name: input.Name}, nil
		},
	}, newTestMetrics(t))

	body, _ := json.Marshal(dto.CreateUserRequest{
		Email:          "a@x.com",
		Name:           "Alice",
		PIN:            "1234",
		CurrentBalance: decimal.RequireFromString("100.00"),
	})

	req := httptest.NewRequest(http.MethodPost, "/create_user", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Email != "a@x.com" || captured.Name != "Alice" || captured.PIN != "1234" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
	if !captured.InitialBalance.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected initial balance 100.00, got %s", captured.InitialBalance)
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}, newTestMetrics(t))

	body, _ := json.Marshal(dto.CreateUserRequest{Email: "a@x.com", Name: "Alice", PIN: "1234"})
	req := httptest.NewRequest(http.MethodPost, "/create_user", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_Get_Success(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	profile := &usecase.UserProfile{
		User: &domain.User{
			Email:          "a@x.com",
			Name:           "Alice",
			PINHash:        "secret-hash",
			Balance:        decimal.RequireFromString("84.50"),
			BudgetReminder: decimal.RequireFromString("500"),
		},
		Transactions: []*domain.Transaction{
			{
				UserEmail:   "a@x.com",
				Kind:        domain.KindDebit,
				Category:    "groceries",
				Amount:      decimal.RequireFromString("15.50"),
				Description: "weekly shop",
				IsManual:    true,
				CreatedAt:   now,
			},
		},
	}

	handler := NewUserHandler(&userServiceStub{
		getFn: func(ctx context.Context, email string) (*usecase.UserProfile, error) {
			return profile, nil
		},
	}, newTestMetrics(t))

	req := httptest.NewRequest(http.MethodGet, "/get_user?email=a%40x.com", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Email != "a@x.com" || resp.Name != "Alice" {
		t.Fatalf("unexpected profile: %+v", resp)
	}
	if !resp.CurrentBalance.Equal(decimal.RequireFromString("84.50")) {
		t.Fatalf("expected balance 84.50, got %s", resp.CurrentBalance)
	}
	if len(resp.Transactions) != 1 || resp.Transactions[0].Category != "groceries" {
		t.Fatalf("unexpected transactions: %+v", resp.Transactions)
	}

	// The PIN hash must never appear anywhere in the payload.
	if bytes.Contains(rec.Body.Bytes(), []byte("secret-hash")) {
		t.Fatal("response leaked the PIN hash")
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		getFn: func(ctx context.Context, email string) (*usecase.UserProfile, error) {
			return nil, domain.ErrUserNotFound
		},
	}, newTestMetrics(t))

	req := httptest.NewRequest(http.MethodGet, "/get_user?email=ghost%40x.com", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Get_MissingEmail(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		getFn: func(ctx context.Context, email string) (*usecase.UserProfile, error) {
			t.Fatal("GetUser should not be called without an email")
			return nil, nil
		},
	}, newTestMetrics(t))

	req := httptest.NewRequest(http.MethodGet, "/get_user", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
			t.Fatal("CreateUser should not be called for invalid payload")
			return nil, nil
		},
	}, newTestMetrics(t))

	req := httptest.NewRequest(http.MethodPost, "/create_user", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
