package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/infrastructure/metrics"
)

// AccountUseCase handles account creation, lookup and lifecycle.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	numberGen   AccountNumberGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	accountRepo AccountRepository,
	idGen IDGenerator,
	numberGen AccountNumberGenerator,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		numberGen:   numberGen,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerID   string
	FirstName string
	LastName  string
}

// CreateAccount creates a new active account with a zero balance and a
// freshly generated unique account number.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	firstName, err := domain.ValidateName(input.FirstName)
	if err != nil {
		return nil, err
	}

	lastName, err := domain.ValidateName(input.LastName)
	if err != nil {
		return nil, err
	}

	number, err := uc.generateAccountNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		AccountNumber: number,
		FirstName:     firstName,
		LastName:      lastName,
		Status:        domain.StatusActive,
		Balance:       decimal.Zero,
		OwnerID:       input.OwnerID,
		Version:       0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// generateAccountNumber produces a candidate number and checks it against
// the store, retrying on collision. The loop is bounded: exhausting it
// yields a typed failure instead of recursing forever. The unique index on
// account_number remains the last line of defense against a lost race.
func (uc *AccountUseCase) generateAccountNumber(ctx context.Context) (string, error) {
	for i := 0; i < MaxNumberGenerationAttempts; i++ {
		candidate := uc.numberGen.Generate()

		if err := domain.ValidateAccountNumber(candidate); err != nil {
			return "", err
		}

		_, err := uc.accountRepo.GetByAccountNumber(ctx, candidate)
		if errors.Is(err, domain.ErrAccountNotFound) {
			return candidate, nil
		}

		if err != nil {
			return "", err
		}

		if uc.metrics != nil {
			uc.metrics.NumberCollisions.Inc()
		}
	}

	return "", domain.ErrGenerationExhausted
}

// GetAccount retrieves an account readable by the requester.
func (uc *AccountUseCase) GetAccount(ctx context.Context, requester domain.Principal, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !requester.CanAccess(account.OwnerID) {
		return nil, domain.ErrUnauthorized
	}

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists the requester's own accounts, most recent first.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, requester domain.Principal, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := normalizePagination(input.Limit, input.Offset)

	return uc.accountRepo.ListByOwner(ctx, requester.ID, limit, offset)
}

// ListAllAccounts lists every account. Administrative principal required.
func (uc *AccountUseCase) ListAllAccounts(ctx context.Context, requester domain.Principal, input ListAccountsInput) ([]*domain.Account, error) {
	if !requester.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	limit, offset := normalizePagination(input.Limit, input.Offset)

	return uc.accountRepo.ListAll(ctx, limit, offset)
}

// ListDeactivatedAccounts lists deactivated accounts. Administrative
// principal required.
func (uc *AccountUseCase) ListDeactivatedAccounts(ctx context.Context, requester domain.Principal, input ListAccountsInput) ([]*domain.Account, error) {
	if !requester.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	limit, offset := normalizePagination(input.Limit, input.Offset)

	return uc.accountRepo.ListByStatus(ctx, domain.StatusDeactivated, limit, offset)
}

// DeactivateAccount flags an account so it no longer accepts deposits or
// withdrawals. Administrative principal required; the account row itself
// is never removed.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, requester domain.Principal, id string) (*domain.Account, error) {
	account, err := uc.transitionStatus(ctx, requester, id, (*domain.Account).Deactivate)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsDeactivated.Inc()
	}

	return account, nil
}

// ReactivateAccount restores a deactivated account to active.
// Administrative principal required.
func (uc *AccountUseCase) ReactivateAccount(ctx context.Context, requester domain.Principal, id string) (*domain.Account, error) {
	account, err := uc.transitionStatus(ctx, requester, id, (*domain.Account).Reactivate)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsReactivated.Inc()
	}

	return account, nil
}

func (uc *AccountUseCase) transitionStatus(
	ctx context.Context,
	requester domain.Principal,
	id string,
	transition func(*domain.Account) error,
) (*domain.Account, error) {
	if !requester.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := transition(account); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateStatus(ctx, account.ID, account.Status, now); err != nil {
		return nil, err
	}

	account.UpdatedAt = now

	return account, nil
}
