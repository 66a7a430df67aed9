package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountDeactivated     = errors.New("account is deactivated")
	ErrAlreadyActive          = errors.New("account is already active")
	ErrAlreadyDeactivated     = errors.New("account is already deactivated")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrGenerationExhausted    = errors.New("account number generation exhausted")
	ErrDuplicateAccountNumber = errors.New("account number already exists")

	// Validation errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrAmountTooLarge         = errors.New("amount exceeds maximum allowed")
	ErrInvalidName            = errors.New("invalid name")
	ErrInvalidAccountNumber   = errors.New("invalid account number format")
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
