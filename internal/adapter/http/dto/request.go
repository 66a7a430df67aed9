package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fr76/bankledger/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ToUseCaseInput converts to use case input. The owner is the
// authenticated principal, not a request field.
func (r *CreateAccountRequest) ToUseCaseInput(ownerID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		OwnerID:   ownerID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// OperationRequest represents a deposit or withdrawal request.
type OperationRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
