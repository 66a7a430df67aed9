package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fr76/bankledger/internal/adapter/http/dto"
	"github.com/fr76/bankledger/internal/adapter/http/middleware"
	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/infrastructure/auth"
	"github.com/fr76/bankledger/internal/usecase"
)

type accountServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn    func(ctx context.Context, requester domain.Principal, id string) (*domain.Account, error)
	listFn   func(ctx context.Context, requester domain.Principal, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, requester domain.Principal, id string) (*domain.Account, error) {
	return s.getFn(ctx, requester, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, requester domain.Principal, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, requester, input)
}

// withClaims attaches verified token claims the way the auth middleware does.
func withClaims(req *http.Request, userID, email string, role domain.Role) *http.Request {
	claims := &auth.Claims{UserID: userID, Email: email, Role: role}
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, claims)
	return req.WithContext(ctx)
}

// withURLParam injects a chi URL parameter for direct handler invocation.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		ID:            "acc-1",
		AccountNumber: "FR76000000000001",
		FirstName:     "Marie",
		LastName:      "Dupont",
		Status:        domain.StatusActive,
		Balance:       decimal.Zero,
		OwnerID:       "user-1",
	}

	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{FirstName: "Marie", LastName: "Dupont"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req = withClaims(req, "user-1", "marie@example.com", domain.RoleClient)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.OwnerID != "user-1" || captured.FirstName != "Marie" || captured.LastName != "Dupont" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountNumber != "FR76000000000001" || resp.Balance != "0.00" {
		t.Fatalf("expected fresh account response, got %+v", resp)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			t.Fatal("CreateAccount should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString("{not json"))
	req = withClaims(req, "user-1", "", domain.RoleClient)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_MissingClaims(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, requester domain.Principal, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/missing", nil)
	req = withClaims(req, "user-1", "", domain.RoleClient)
	req = withURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_Forbidden(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, requester domain.Principal, id string) (*domain.Account, error) {
			return nil, domain.ErrUnauthorized
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1", nil)
	req = withClaims(req, "other-user", "", domain.RoleClient)
	req = withURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAccountHandler_List_PassesPrincipal(t *testing.T) {
	var captured domain.Principal
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, requester domain.Principal, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			captured = requester
			return []*domain.Account{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts?limit=5", nil)
	req = withClaims(req, "user-9", "", domain.RoleClient)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.ID != "user-9" || captured.IsAdmin() {
		t.Fatalf("expected client principal user-9, got %+v", captured)
	}
}
