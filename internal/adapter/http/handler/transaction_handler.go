package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fr76/bankledger/internal/adapter/http/dto"
	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	ListTransactions(ctx context.Context, requester domain.Principal, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction listing requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// ListByAccount lists an account's transactions, most recent first.
// Supports optional type, from and to query filters.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := requesterFromContext(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	filter := domain.TransactionFilter{
		StartDate: parseTimeQuery(r, "from"),
		EndDate:   parseTimeQuery(r, "to"),
	}

	if txType := r.URL.Query().Get("type"); txType != "" {
		filter.Type = domain.TransactionType(txType)
		if !filter.Type.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid transaction type", txType)
			return
		}
	}

	transactions, err := h.transactionUC.ListTransactions(r.Context(), claims.Principal(), usecase.ListTransactionsInput{
		AccountID: id,
		Filter:    filter,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}
