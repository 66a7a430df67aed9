package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeIdempotencyStore struct {
	checkAndSetFn func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	deleteFn      func(ctx context.Context, key string) error
}

func (s *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	return s.checkAndSetFn(ctx, key, response, ttl)
}

func (s *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, key, response, ttl)
}

func (s *fakeIdempotencyStore) Delete(ctx context.Context, key string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, key)
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(`{"balance":"100.00"}`), nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/deposit", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "dep-1")
	rec := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run on replay")
	})).ServeHTTP(rec, req)

	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected replay header")
	}
	if rec.Body.String() != `{"balance":"100.00"}` {
		t.Fatalf("expected cached body, got %s", rec.Body.String())
	}
}

func TestIdempotencyMiddleware_ConflictWhileInProgress(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(processingMarker), nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/withdraw", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "wd-1")
	rec := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run while first request is in flight")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestIdempotencyMiddleware_CachesSuccessfulResponse(t *testing.T) {
	var updatedWith []byte
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updatedWith = response
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/deposit", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "dep-2")
	rec := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"balance":"60.00"}`))
	})).ServeHTTP(rec, req)

	if string(updatedWith) != `{"balance":"60.00"}` {
		t.Fatalf("expected response to be cached, got %s", updatedWith)
	}
}

func TestIdempotencyMiddleware_ReleasesKeyOnFailure(t *testing.T) {
	var deleted string
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			t.Fatal("failed responses must not be cached")
			return nil
		},
		deleteFn: func(ctx context.Context, key string) error {
			deleted = key
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/withdraw", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "wd-2")
	rec := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})).ServeHTTP(rec, req)

	if deleted != "wd-2" {
		t.Fatalf("expected key to be released, got %q", deleted)
	}
}

func TestIdempotencyMiddleware_SkipsReadsAndMissingKeys(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			t.Fatal("store should not be consulted")
			return false, nil, nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	var calls int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ })

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	getReq.Header.Set(IdempotencyKeyHeader, "ignored")
	mw.Wrap(next).ServeHTTP(httptest.NewRecorder(), getReq)

	postReq := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(`{}`))
	mw.Wrap(next).ServeHTTP(httptest.NewRecorder(), postReq)

	if calls != 2 {
		t.Fatalf("expected both requests to pass through, got %d", calls)
	}
}

func TestIdempotencyMiddleware_StoreErrorFailsClosed(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/deposit", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "dep-3")
	rec := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run when the store errors")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
