package usecase

import (
	"context"

	"github.com/fr76/bankledger/internal/domain"
)

// TransactionUseCase handles transaction history reads.
type TransactionUseCase struct {
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(accountRepo AccountRepository, transactionRepo TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	AccountID string
	Filter    domain.TransactionFilter
	Limit     int
	Offset    int
}

// ListTransactions returns an account's ledger, most recent first. The
// requester must own the account or be an administrator.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, requester domain.Principal, input ListTransactionsInput) ([]*domain.Transaction, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if !requester.CanAccess(account.OwnerID) {
		return nil, domain.ErrUnauthorized
	}

	limit, offset := normalizePagination(input.Limit, input.Offset)

	return uc.transactionRepo.ListByAccount(ctx, account.ID, input.Filter, limit, offset)
}
