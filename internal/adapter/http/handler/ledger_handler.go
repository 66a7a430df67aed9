package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fr76/bankledger/internal/adapter/http/dto"
	"github.com/fr76/bankledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Deposit(ctx context.Context, input usecase.OperationInput) (*usecase.OperationResult, error)
	Withdraw(ctx context.Context, input usecase.OperationInput) (*usecase.OperationResult, error)
}

// LedgerHandler handles deposit and withdrawal requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Deposit credits an account.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, h.ledgerUC.Deposit)
}

// Withdraw debits an account.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, h.ledgerUC.Withdraw)
}

func (h *LedgerHandler) operate(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, usecase.OperationInput) (*usecase.OperationResult, error),
) {
	claims, ok := requesterFromContext(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := op(r.Context(), usecase.OperationInput{
		AccountID:     id,
		Amount:        req.Amount,
		Requester:     claims.Principal(),
		NotifyAddress: claims.Email,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromResult(result))
}
