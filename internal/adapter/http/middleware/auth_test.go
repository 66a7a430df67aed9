package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/infrastructure/auth"
)

func TestAuthMiddlewarePassesClaims(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Minute)
	token, err := manager.Generate("user-1", "user@example.com", domain.RoleClient)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var gotClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Auth(manager)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotClaims == nil || gotClaims.UserID != "user-1" || gotClaims.Email != "user@example.com" {
		t.Fatalf("expected claims in context, got %+v", gotClaims)
	}
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Minute)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			Auth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not run")
			})).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	adminReq := httptest.NewRequest(http.MethodGet, "/api/v1/admin/accounts", nil)
	adminReq = adminReq.WithContext(context.WithValue(adminReq.Context(), ClaimsContextKey,
		&auth.Claims{UserID: "admin-1", Role: domain.RoleAdmin}))
	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, adminReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin to pass, got %d", rec.Code)
	}

	clientReq := httptest.NewRequest(http.MethodGet, "/api/v1/admin/accounts", nil)
	clientReq = clientReq.WithContext(context.WithValue(clientReq.Context(), ClaimsContextKey,
		&auth.Claims{UserID: "user-1", Role: domain.RoleClient}))
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, clientReq)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected client to be forbidden, got %d", rec.Code)
	}

	anonReq := httptest.NewRequest(http.MethodGet, "/api/v1/admin/accounts", nil)
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, anonReq)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected anonymous to be unauthorized, got %d", rec.Code)
	}
}

func TestStaticAdminInjectsAdmin(t *testing.T) {
	var gotClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()
	StaticAdmin(next).ServeHTTP(rec, req)

	if gotClaims == nil || !gotClaims.Principal().IsAdmin() {
		t.Fatalf("expected admin claims, got %+v", gotClaims)
	}
}
