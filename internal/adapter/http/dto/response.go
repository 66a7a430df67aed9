package dto

import (
	"time"

	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/usecase"
)

// AccountResponse represents an account in API responses. Monetary values
// are rendered as fixed two-decimal strings so clients never see float
// artifacts.
type AccountResponse struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"account_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Status        string    `json:"status"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Status:        string(a.Status),
		Balance:       a.Balance.StringFixed(2),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// OperationResponse represents the outcome of a deposit or withdrawal.
type OperationResponse struct {
	AccountID     string    `json:"account_id"`
	AccountNumber string    `json:"account_number"`
	TransactionID string    `json:"transaction_id"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// OperationFromResult converts a use case result to a response.
func OperationFromResult(r *usecase.OperationResult) *OperationResponse {
	return &OperationResponse{
		AccountID:     r.AccountID,
		AccountNumber: r.AccountNumber,
		TransactionID: r.TransactionID,
		Balance:       r.NewBalance.StringFixed(2),
		CreatedAt:     r.CreatedAt,
	}
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:        t.ID,
		Type:      string(t.Type),
		Amount:    t.Amount.StringFixed(2),
		AccountID: t.AccountID,
		CreatedAt: t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
