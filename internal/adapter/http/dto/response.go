package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/savexhq/savex/internal/domain"
	"github.com/savexhq/savex/internal/usecase"
)

// StatusResponse is the envelope for operations that return no entity.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

// ErrorResponse is the envelope for failed requests.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TransactionResponse is one entry of a user's transaction log.
type TransactionResponse struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	IsManual    bool            `json:"isManual"`
	Date        time.Time       `json:"date"`
}

// UserResponse is a user profile. The PIN hash never leaves the server.
type UserResponse struct {
	Status         string                `json:"status"`
	Email          string                `json:"email"`
	Name           string                `json:"name"`
	CurrentBalance decimal.Decimal       `json:"currentBalance"`
	BudgetReminder decimal.Decimal       `json:"budgetReminder"`
	Transactions   []TransactionResponse `json:"transactions"`
}

// NewStatusResponse builds a success envelope.
func NewStatusResponse(message string) StatusResponse {
	return StatusResponse{Status: "success", Message: message}
}

// NewTokenResponse builds a success envelope carrying a session token.
func NewTokenResponse(message, token string) StatusResponse {
	return StatusResponse{Status: "success", Message: message, Token: token}
}

// NewUserResponse converts a profile to its API representation.
func NewUserResponse(profile *usecase.UserProfile) UserResponse {
	transactions := make([]TransactionResponse, 0, len(profile.Transactions))
	for _, txn := range profile.Transactions {
		transactions = append(transactions, newTransactionResponse(txn))
	}

	return UserResponse{
		Status:         "success",
		Email:          profile.User.Email,
		Name:           profile.User.Name,
		CurrentBalance: profile.User.Balance,
		BudgetReminder: profile.User.BudgetReminder,
		Transactions:   transactions,
	}
}

func newTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Category:    txn.Category,
		Amount:      txn.Amount,
		Description: txn.Description,
		IsManual:    txn.IsManual,
		Date:        txn.CreatedAt,
	}
}
