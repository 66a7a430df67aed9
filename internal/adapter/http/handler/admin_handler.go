package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fr76/bankledger/internal/adapter/http/dto"
	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/usecase"
)

// AdminService defines the behavior needed by AdminHandler.
type AdminService interface {
	ListAllAccounts(ctx context.Context, requester domain.Principal, input usecase.ListAccountsInput) ([]*domain.Account, error)
	ListDeactivatedAccounts(ctx context.Context, requester domain.Principal, input usecase.ListAccountsInput) ([]*domain.Account, error)
	DeactivateAccount(ctx context.Context, requester domain.Principal, id string) (*domain.Account, error)
	ReactivateAccount(ctx context.Context, requester domain.Principal, id string) (*domain.Account, error)
}

// AdminHandler handles administrator-only account management requests.
type AdminHandler struct {
	accountUC AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accountUC AdminService) *AdminHandler {
	return &AdminHandler{accountUC: accountUC}
}

// ListAccounts lists every account in the system.
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.accountUC.ListAllAccounts)
}

// ListDeactivatedAccounts lists deactivated accounts, most recently
// deactivated first.
func (h *AdminHandler) ListDeactivatedAccounts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.accountUC.ListDeactivatedAccounts)
}

// Deactivate closes an account for operations. Its history stays readable.
func (h *AdminHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.accountUC.DeactivateAccount)
}

// Reactivate reopens a deactivated account.
func (h *AdminHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.accountUC.ReactivateAccount)
}

func (h *AdminHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, domain.Principal, usecase.ListAccountsInput) ([]*domain.Account, error),
) {
	claims, ok := requesterFromContext(w, r)
	if !ok {
		return
	}

	accounts, err := op(r.Context(), claims.Principal(), usecase.ListAccountsInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

func (h *AdminHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, domain.Principal, string) (*domain.Account, error),
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

	account, err := op(r.Context(), claims.Principal(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
