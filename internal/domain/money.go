package domain

import (
	"github.com/shopspring/decimal"
)

// MaxTransactionAmount is the ceiling for a single deposit or withdrawal.
var MaxTransactionAmount = decimal.NewFromInt(1_000_000)

// ParseAmount validates an externally supplied monetary amount and
// normalizes it to two decimal places. Amounts are truncated, not rounded:
// the extra precision never entered the ledger in the first place.
func ParseAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	amount = amount.Truncate(2)

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	if amount.GreaterThan(MaxTransactionAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}

	return amount, nil
}
