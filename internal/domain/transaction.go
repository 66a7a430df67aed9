package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes the two balance-affecting operations.
// The sign of a transaction is carried by the type, never by the amount.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
)

// IsValid checks that the type is one of the known kinds.
func (t TransactionType) IsValid() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// Transaction is a single append-only ledger record. It is created exactly
// once, atomically with the balance update it describes, and never mutated.
type Transaction struct {
	ID        string
	Type      TransactionType
	Amount    decimal.Decimal
	AccountID string
	CreatedAt time.Time
}

// Validate checks the ledger entry invariants before it is appended.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.AccountID == "" {
		return ErrAccountNotFound
	}

	return nil
}

// TransactionFilter narrows a transaction listing. Zero values mean no
// filtering on that dimension.
type TransactionFilter struct {
	Type      TransactionType
	StartDate time.Time
	EndDate   time.Time
}
