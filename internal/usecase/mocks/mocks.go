package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc             func(ctx context.Context, account *domain.Account) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByAccountNumberFunc func(ctx context.Context, number string) (*domain.Account, error)
	UpdateBalanceFunc      func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatusFunc       func(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListByOwnerFunc        func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error)
	ListAllFunc            func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByStatusFunc       func(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return domain.ErrDuplicateAccountNumber
		}
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByAccountNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByAccountNumberFunc != nil {
		return m.GetByAccountNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.AccountNumber == number {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.Version++
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Status = status
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, limit, offset)
	}
	return m.list(func(a *domain.Account) bool { return a.OwnerID == ownerID }), nil
}

func (m *MockAccountRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, limit, offset)
	}
	return m.list(func(*domain.Account) bool { return true }), nil
}

func (m *MockAccountRepository) ListByStatus(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]*domain.Account, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit, offset)
	}
	return m.list(func(a *domain.Account) bool { return a.Status == status }), nil
}

func (m *MockAccountRepository) list(keep func(*domain.Account) bool) []*domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if keep(acc) {
			cp := *acc
			accounts = append(accounts, &cp)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})
	return accounts
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
	ListByAccountFunc func(ctx context.Context, accountID string, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *transaction
	m.transactions = append(m.transactions, &cp)
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, filter, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.transactions {
		if t.AccountID != accountID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if !filter.StartDate.IsZero() && t.CreatedAt.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && t.CreatedAt.After(filter.EndDate) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Count returns the number of stored transactions.
func (m *MockTransactionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}
