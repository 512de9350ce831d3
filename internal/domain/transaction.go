package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tags the sign convention of a transaction explicitly.
type TransactionKind string

const (
	// KindDebit decreases the balance by Amount. Every transaction written
	// today is a debit; credits adjust the balance without a log entry.
	KindDebit TransactionKind = "debit"

	// KindCredit is reserved for a future auditable credit log.
	KindCredit TransactionKind = "credit"
)

// Transaction is a single immutable entry in a user's spending log.
// Entries are only ever appended or bulk-cleared, never edited.
type Transaction struct {
	ID          string
	UserEmail   string
	Kind        TransactionKind
	Category    string
	Amount      decimal.Decimal
	Description string
	IsManual    bool
	CreatedAt   time.Time
}
