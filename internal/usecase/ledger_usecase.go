package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/infrastructure/metrics"
)

// LedgerUseCase performs deposits and withdrawals as atomic
// balance-mutation plus ledger-append units.
type LedgerUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	notifier        Notifier
	retrier         Retrier
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	notifier Notifier,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
	}
}

// WithRetrier makes deposits and withdrawals retry when the storage layer
// reports a transient conflict. The whole transactional unit re-runs, so a
// retried operation re-reads the balance under a fresh lock.
func (uc *LedgerUseCase) WithRetrier(retrier Retrier) *LedgerUseCase {
	uc.retrier = retrier
	return uc
}

// OperationInput represents input for a deposit or withdrawal.
type OperationInput struct {
	AccountID string
	Amount    decimal.Decimal
	Requester domain.Principal

	// NotifyAddress is where the withdrawal confirmation goes. Supplied by
	// the identity collaborator; empty means no notification is attempted.
	NotifyAddress string
}

// OperationResult is the post-operation state returned to the caller.
type OperationResult struct {
	AccountID     string
	AccountNumber string
	NewBalance    decimal.Decimal
	TransactionID string
	CreatedAt     time.Time
}

// Deposit credits an account and appends the matching ledger transaction.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input OperationInput) (*OperationResult, error) {
	start := time.Now()

	result, err := uc.executeWithRetry(ctx, input, domain.TypeDeposit)
	if err != nil {
		uc.recordError(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsCreated.Inc()
		uc.metrics.OperationAmount.Observe(input.Amount.InexactFloat64())
		uc.metrics.OperationDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

// Withdraw debits an account and appends the matching ledger transaction.
// A withdrawal of the exact balance is permitted and leaves the balance at
// zero. The owner is notified after commit, best-effort.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input OperationInput) (*OperationResult, error) {
	start := time.Now()

	result, err := uc.executeWithRetry(ctx, input, domain.TypeWithdrawal)
	if err != nil {
		uc.recordError(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsCreated.Inc()
		uc.metrics.OperationAmount.Observe(input.Amount.InexactFloat64())
		uc.metrics.OperationDuration.Observe(time.Since(start).Seconds())
	}

	uc.notifyWithdrawal(ctx, input, result)

	return result, nil
}

func (uc *LedgerUseCase) executeWithRetry(ctx context.Context, input OperationInput, txType domain.TransactionType) (*OperationResult, error) {
	if uc.retrier == nil {
		return uc.execute(ctx, input, txType)
	}

	var result *OperationResult

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		result, err = uc.execute(ctx, input, txType)
		return err
	})

	return result, err
}

// execute runs the shared transactional shape of both operations:
// validate, lock, authorize, check eligibility, mutate balance, append
// ledger entry, commit.
func (uc *LedgerUseCase) execute(ctx context.Context, input OperationInput, txType domain.TransactionType) (*OperationResult, error) {
	amount, err := domain.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Row lock serializes concurrent operations on the same account; the
	// balance read below cannot go stale before the write commits.
	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if !input.Requester.CanAccess(account.OwnerID) {
		return nil, domain.ErrUnauthorized
	}

	if !account.IsOperable() {
		return nil, domain.ErrAccountDeactivated
	}

	now := time.Now().UTC()

	var newBalance decimal.Decimal

	switch txType {
	case domain.TypeDeposit:
		newBalance = account.ApplyDeposit(amount)
	case domain.TypeWithdrawal:
		if err := account.ValidateWithdrawal(amount); err != nil {
			return nil, err
		}

		newBalance = account.ApplyWithdrawal(amount)
	default:
		return nil, domain.ErrInvalidTransactionType
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		Type:      txType,
		Amount:    amount,
		AccountID: account.ID,
		CreatedAt: now,
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(txCtx, tx, transaction); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &OperationResult{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		NewBalance:    newBalance,
		TransactionID: transaction.ID,
		CreatedAt:     now,
	}, nil
}

// notifyWithdrawal sends the post-withdrawal confirmation. Delivery is not
// on the critical path: a failure is logged and counted, never returned.
func (uc *LedgerUseCase) notifyWithdrawal(ctx context.Context, input OperationInput, result *OperationResult) {
	if uc.notifier == nil || input.NotifyAddress == "" {
		return
	}

	subject := "Withdrawal confirmation"
	body := fmt.Sprintf("A withdrawal of %s was made on account %s. New balance: %s.",
		input.Amount.Truncate(2).StringFixed(2), result.AccountNumber, result.NewBalance.StringFixed(2))

	if err := uc.notifier.Notify(ctx, input.NotifyAddress, subject, body); err != nil {
		uc.logger.Warn().
			Err(err).
			Str("account_id", result.AccountID).
			Str("transaction_id", result.TransactionID).
			Msg("withdrawal notification failed")

		if uc.metrics != nil {
			uc.metrics.NotificationsFailed.Inc()
		}

		return
	}

	if uc.metrics != nil {
		uc.metrics.NotificationsSent.Inc()
	}
}

func (uc *LedgerUseCase) recordError(err error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.OperationErrors.WithLabelValues(errorType(err)).Inc()
}

func errorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case isBusinessError(err):
		return err.Error()
	default:
		return "infrastructure"
	}
}

func isBusinessError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrInvalidAmount,
		domain.ErrAmountTooLarge,
		domain.ErrAccountNotFound,
		domain.ErrAccountDeactivated,
		domain.ErrInsufficientFunds,
		domain.ErrUnauthorized,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
