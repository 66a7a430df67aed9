package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/usecase"
	"github.com/fr76/bankledger/internal/usecase/mocks"
)

func TestTransactionUseCase_ListTransactions(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	transactionRepo := mocks.NewMockTransactionRepository()

	if err := accountRepo.Create(context.Background(), &domain.Account{ID: "acc-1", OwnerID: "owner-1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, tx := range []*domain.Transaction{
		{ID: "t1", Type: domain.TypeDeposit, Amount: decimal.NewFromInt(100), AccountID: "acc-1"},
		{ID: "t2", Type: domain.TypeWithdrawal, Amount: decimal.NewFromInt(30), AccountID: "acc-1"},
		{ID: "t3", Type: domain.TypeDeposit, Amount: decimal.NewFromInt(5), AccountID: "acc-1"},
	} {
		tx.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := transactionRepo.Create(context.Background(), nil, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	uc := usecase.NewTransactionUseCase(accountRepo, transactionRepo)
	owner := domain.Principal{ID: "owner-1", Role: domain.RoleClient}

	t.Run("most recent first", func(t *testing.T) {
		txs, err := uc.ListTransactions(context.Background(), owner, usecase.ListTransactionsInput{AccountID: "acc-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(txs) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(txs))
		}

		if txs[0].ID != "t3" || txs[2].ID != "t1" {
			t.Errorf("expected descending createdAt order, got %s..%s", txs[0].ID, txs[2].ID)
		}
	})

	t.Run("filter by type", func(t *testing.T) {
		txs, err := uc.ListTransactions(context.Background(), owner, usecase.ListTransactionsInput{
			AccountID: "acc-1",
			Filter:    domain.TransactionFilter{Type: domain.TypeWithdrawal},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(txs) != 1 || txs[0].ID != "t2" {
			t.Errorf("expected only t2, got %+v", txs)
		}
	})

	t.Run("filter by date range", func(t *testing.T) {
		txs, err := uc.ListTransactions(context.Background(), owner, usecase.ListTransactionsInput{
			AccountID: "acc-1",
			Filter: domain.TransactionFilter{
				StartDate: base.Add(30 * time.Second),
				EndDate:   base.Add(90 * time.Second),
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(txs) != 1 || txs[0].ID != "t2" {
			t.Errorf("expected only t2 in range, got %+v", txs)
		}
	})

	t.Run("admin reads any ledger", func(t *testing.T) {
		txs, err := uc.ListTransactions(context.Background(), domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}, usecase.ListTransactionsInput{AccountID: "acc-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(txs) != 3 {
			t.Errorf("expected 3 transactions, got %d", len(txs))
		}
	})

	t.Run("other client denied", func(t *testing.T) {
		_, err := uc.ListTransactions(context.Background(), domain.Principal{ID: "owner-2", Role: domain.RoleClient}, usecase.ListTransactionsInput{AccountID: "acc-1"})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := uc.ListTransactions(context.Background(), owner, usecase.ListTransactionsInput{AccountID: "missing"})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("reads do not mutate", func(t *testing.T) {
		first, err := uc.ListTransactions(context.Background(), owner, usecase.ListTransactionsInput{AccountID: "acc-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second, err := uc.ListTransactions(context.Background(), owner, usecase.ListTransactionsInput{AccountID: "acc-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(first) != len(second) {
			t.Errorf("expected identical results, got %d and %d", len(first), len(second))
		}

		for i := range first {
			if first[i].ID != second[i].ID {
				t.Errorf("expected identical ordering at %d: %s vs %s", i, first[i].ID, second[i].ID)
			}
		}
	})
}
