package idempotency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/comanda-pos/api/internal/auth"
	"github.com/comanda-pos/api/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type mockRedis struct {
	keys     map[string]bool
	ttl      time.Duration
	err      error
	delErr   error
	calls    int
	released []string
}

func (m *mockRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	m.calls++
	m.ttl = expiration
	if m.err != nil {
		return redis.NewBoolResult(false, m.err)
	}
	if m.keys[key] {
		return redis.NewBoolResult(false, nil)
	}
	m.keys[key] = true
	return redis.NewBoolResult(true, nil)
}

func (m *mockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if m.delErr != nil {
		return redis.NewIntResult(0, m.delErr)
	}
	var n int64
	for _, k := range keys {
		if m.keys[k] {
			delete(m.keys, k)
			n++
		}
		m.released = append(m.released, k)
	}
	return redis.NewIntResult(n, nil)
}

func newMockStore() (*Store, *mockRedis) {
	rdb := &mockRedis{keys: map[string]bool{}}
	return &Store{rdb: rdb, ttl: DefaultTTL}, rdb
}

func okHandler(hits *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.WriteHeader(http.StatusCreated)
	})
}

func request(key string, businessID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(Header, key)
	}
	if businessID != uuid.Nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), &auth.Claims{BusinessID: businessID}))
	}
	return req
}

func TestStoreClaim(t *testing.T) {
	store, rdb := newMockStore()

	ok, err := store.Claim(context.Background(), "k1")
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}
	ok, err = store.Claim(context.Background(), "k1")
	if err != nil || ok {
		t.Fatalf("second claim should lose: ok=%v err=%v", ok, err)
	}
	if rdb.ttl != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %v", rdb.ttl)
	}
}

func TestGuard_DuplicateKeyConflicts(t *testing.T) {
	store, _ := newMockStore()
	hits := 0
	h := Guard(store)(okHandler(&hits))
	biz := uuid.New()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, request("abc", biz))
	if rr.Code != http.StatusCreated {
		t.Fatalf("first request: expected 201, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, request("abc", biz))
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", rr.Code)
	}
	if hits != 1 {
		t.Errorf("handler should run once, ran %d times", hits)
	}
}

func TestGuard_KeysAreScopedByBusiness(t *testing.T) {
	store, _ := newMockStore()
	hits := 0
	h := Guard(store)(okHandler(&hits))

	for _, biz := range []uuid.UUID{uuid.New(), uuid.New()} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, request("same-key", biz))
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rr.Code)
		}
	}
	if hits != 2 {
		t.Errorf("expected 2 handler runs, got %d", hits)
	}
}

func TestGuard_NoHeaderPassesThrough(t *testing.T) {
	store, rdb := newMockStore()
	hits := 0
	h := Guard(store)(okHandler(&hits))

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, request("", uuid.New()))
	}
	if hits != 2 || rdb.calls != 0 {
		t.Errorf("expected 2 hits and no store calls, got hits=%d calls=%d", hits, rdb.calls)
	}
}

func TestGuard_StoreErrorFailsOpen(t *testing.T) {
	store, rdb := newMockStore()
	rdb.err = errors.New("connection refused")
	hits := 0
	h := Guard(store)(okHandler(&hits))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, request("abc", uuid.New()))
	if rr.Code != http.StatusCreated || hits != 1 {
		t.Fatalf("expected pass-through on store error, got %d (hits=%d)", rr.Code, hits)
	}
}

func TestGuard_NilStore(t *testing.T) {
	hits := 0
	h := Guard(nil)(okHandler(&hits))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, request("abc", uuid.New()))
	if hits != 1 {
		t.Fatal("nil store should disable the guard")
	}
}

// statusSequence answers with the given statuses, one per request.
func statusSequence(hits *int, statuses ...int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := statuses[*hits]
		*hits++
		w.WriteHeader(status)
	})
}

func TestGuard_FailedSubmissionCanBeRetried(t *testing.T) {
	tests := []struct {
		name  string
		first int
	}{
		{"server error", http.StatusInternalServerError},
		{"bad request", http.StatusBadRequest},
		{"not found", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, rdb := newMockStore()
			hits := 0
			h := Guard(store)(statusSequence(&hits, tt.first, http.StatusCreated, http.StatusCreated))
			biz := uuid.New()

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, request("retry-me", biz))
			if rr.Code != tt.first {
				t.Fatalf("first request: expected %d, got %d", tt.first, rr.Code)
			}
			if len(rdb.released) != 1 {
				t.Fatalf("key should be released after %d, released %v", tt.first, rdb.released)
			}

			rr = httptest.NewRecorder()
			h.ServeHTTP(rr, request("retry-me", biz))
			if rr.Code != http.StatusCreated {
				t.Fatalf("retry: expected 201, got %d", rr.Code)
			}

			// Once the retry succeeds the key is spent.
			rr = httptest.NewRecorder()
			h.ServeHTTP(rr, request("retry-me", biz))
			if rr.Code != http.StatusConflict {
				t.Fatalf("after success: expected 409, got %d", rr.Code)
			}
			if hits != 2 {
				t.Errorf("handler should run twice, ran %d times", hits)
			}
		})
	}
}

func TestGuard_SuccessKeepsKey(t *testing.T) {
	store, rdb := newMockStore()
	hits := 0
	h := Guard(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{}`)) // implicit 200
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, request("k", uuid.New()))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(rdb.released) != 0 {
		t.Errorf("successful submission should keep its key, released %v", rdb.released)
	}
}

func TestGuard_PanicReleasesKey(t *testing.T) {
	store, rdb := newMockStore()
	h := Guard(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	func() {
		defer func() { recover() }() //nolint:errcheck
		h.ServeHTTP(httptest.NewRecorder(), request("k", uuid.New()))
	}()
	if len(rdb.released) != 1 {
		t.Errorf("panicking handler should release its key, released %v", rdb.released)
	}
}

func TestGuard_ReleaseErrorIsLogged(t *testing.T) {
	store, rdb := newMockStore()
	rdb.delErr = errors.New("connection reset")
	hits := 0
	h := Guard(store)(statusSequence(&hits, http.StatusInternalServerError))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, request("k", uuid.New()))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("handler status should pass through, got %d", rr.Code)
	}
}

func TestGuard_PublicKeysAreScopedByBusinessParam(t *testing.T) {
	store, rdb := newMockStore()
	hits := 0
	r := chi.NewRouter()
	r.With(Guard(store)).Post("/businesses/{bid}/orders", okHandler(&hits).ServeHTTP)

	bizA, bizB := uuid.New(), uuid.New()
	for _, biz := range []uuid.UUID{bizA, bizB} {
		req := httptest.NewRequest(http.MethodPost, "/businesses/"+biz.String()+"/orders", strings.NewReader(`{}`))
		req.Header.Set(Header, "same-key")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusCreated {
			t.Fatalf("business %s: expected 201, got %d", biz, rr.Code)
		}
	}
	if hits != 2 {
		t.Errorf("customers of different businesses should not collide, hits=%d", hits)
	}
	if !rdb.keys["idem:order:"+bizA.String()+":same-key"] {
		t.Errorf("expected key scoped by business param, have %v", rdb.keys)
	}
}
