package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account holder. The email is the unique key;
// it is stored lower-cased.
type User struct {
	Email          string
	Name           string
	PINHash        string
	Balance        decimal.Decimal
	BudgetReminder decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyDebit returns the balance after recording a debit of amount.
func (u *User) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return u.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit of amount.
func (u *User) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return u.Balance.Add(amount)
}
