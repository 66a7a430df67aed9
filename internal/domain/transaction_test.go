package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{
			name: "valid deposit",
			tx:   Transaction{Type: TypeDeposit, Amount: decimal.NewFromInt(10), AccountID: "acc-1"},
		},
		{
			name: "valid withdrawal",
			tx:   Transaction{Type: TypeWithdrawal, Amount: decimal.RequireFromString("0.01"), AccountID: "acc-1"},
		},
		{
			name:    "unknown type",
			tx:      Transaction{Type: "transfer", Amount: decimal.NewFromInt(10), AccountID: "acc-1"},
			wantErr: ErrInvalidTransactionType,
		},
		{
			name:    "zero amount",
			tx:      Transaction{Type: TypeDeposit, Amount: decimal.Zero, AccountID: "acc-1"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			tx:      Transaction{Type: TypeWithdrawal, Amount: decimal.NewFromInt(-1), AccountID: "acc-1"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "missing account",
			tx:      Transaction{Type: TypeDeposit, Amount: decimal.NewFromInt(10)},
			wantErr: ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPrincipal_CanAccess(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		ownerID   string
		want      bool
	}{
		{name: "owner", principal: Principal{ID: "u1", Role: RoleClient}, ownerID: "u1", want: true},
		{name: "other client", principal: Principal{ID: "u1", Role: RoleClient}, ownerID: "u2", want: false},
		{name: "admin on any account", principal: Principal{ID: "a1", Role: RoleAdmin}, ownerID: "u2", want: true},
		{name: "empty principal id", principal: Principal{Role: RoleClient}, ownerID: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.principal.CanAccess(tt.ownerID); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
