package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fr76/bankledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByAccountNumber(ctx context.Context, number string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error)
	ListAll(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByStatus(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique entity IDs.
type IDGenerator interface {
	Generate() string
}

// AccountNumberGenerator produces candidate externally visible account
// numbers. Uniqueness is enforced by the caller via a bounded
// check-and-retry loop against the account store.
type AccountNumberGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage failures such as
// deadlocks and serialization conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Notifier delivers best-effort notifications to account owners. Failures
// must never fail or roll back the operation that triggered them.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a key, allowing the request to be retried.
	Delete(ctx context.Context, key string) error
}
