package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus gates which operations an account accepts.
type AccountStatus string

const (
	StatusActive      AccountStatus = "active"
	StatusDeactivated AccountStatus = "deactivated"
)

// Account number format: fixed country prefix followed by 12 digits.
const (
	AccountNumberPrefix = "FR76"
	AccountNumberDigits = 12
)

// Name length bounds for account holders.
const (
	MinNameLength = 2
	MaxNameLength = 50
)

var (
	accountNumberRegex = regexp.MustCompile(`^FR76\d{12}$`)
	nameRegex          = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s'-]+$`)
)

// Account represents a balance-holding bank account owned by one principal.
type Account struct {
	ID            string
	AccountNumber string
	FirstName     string
	LastName      string
	Status        AccountStatus
	Balance       decimal.Decimal
	OwnerID       string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOperable reports whether balance-mutating operations are permitted.
func (a *Account) IsOperable() bool {
	return a.Status == StatusActive
}

// ValidateWithdrawal checks that the account can be debited by amount
// without going negative. A withdrawal of the exact balance is allowed.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDeposit returns the balance after crediting amount.
func (a *Account) ApplyDeposit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// ApplyWithdrawal returns the balance after debiting amount.
func (a *Account) ApplyWithdrawal(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// Deactivate transitions the account to deactivated.
func (a *Account) Deactivate() error {
	if a.Status == StatusDeactivated {
		return ErrAlreadyDeactivated
	}

	a.Status = StatusDeactivated

	return nil
}

// Reactivate transitions a deactivated account back to active.
func (a *Account) Reactivate() error {
	if a.Status == StatusActive {
		return ErrAlreadyActive
	}

	a.Status = StatusActive

	return nil
}

// ValidateName validates an account holder name: trimmed, 2-50 characters,
// letters (including accented), spaces, hyphens and apostrophes only.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)

	runes := len([]rune(name))
	if runes < MinNameLength || runes > MaxNameLength {
		return "", fmt.Errorf("%w: must be between %d and %d characters", ErrInvalidName, MinNameLength, MaxNameLength)
	}

	if !nameRegex.MatchString(name) {
		return "", fmt.Errorf("%w: contains invalid characters", ErrInvalidName)
	}

	return name, nil
}

// ValidateAccountNumber checks the externally visible number format.
func ValidateAccountNumber(number string) error {
	if !accountNumberRegex.MatchString(number) {
		return ErrInvalidAccountNumber
	}
	return nil
}
