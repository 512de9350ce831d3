package dto

import "github.com/shopspring/decimal"

// SendCodeRequest asks for a verification code to be emailed.
type SendCodeRequest struct {
	Email string `json:"email"`
}

// VerifyCodeRequest submits a previously emailed code.
type VerifyCodeRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	PIN            string          `json:"pin"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// AddTransactionRequest records a spend against the user's balance.
type AddTransactionRequest struct {
	Email       string          `json:"email"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	IsManual    bool            `json:"isManual"`
}

// AddMoneyRequest credits the user's balance.
type AddMoneyRequest struct {
	Email  string          `json:"email"`
	Amount decimal.Decimal `json:"amount"`
}

// UpdateBalanceRequest overwrites the user's balance with an externally
// reconciled value.
type UpdateBalanceRequest struct {
	Email      string          `json:"email"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// SetBudgetRequest sets the monthly budget reminder threshold.
type SetBudgetRequest struct {
	Email  string          `json:"email"`
	Amount decimal.Decimal `json:"amount"`
}

// ClearHistoryRequest deletes the user's transaction log.
type ClearHistoryRequest struct {
	Email string `json:"email"`
}
