// Package idempotency rejects repeated order submissions carrying the same
// Idempotency-Key header.
package idempotency

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/comanda-pos/api/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	Header     = "Idempotency-Key"
	DefaultTTL = 24 * time.Hour
)

type keyValue interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store records keys for a fixed TTL. The first Claim of a key wins.
type Store struct {
	rdb keyValue
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Claim reports whether key was free and is now taken.
func (s *Store) Claim(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
}

// Release frees a key so the same submission can be retried.
func (s *Store) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// Claimer is what Guard needs from a Store.
type Claimer interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Guard answers 409 to a request whose key was already used. A key is kept
// only when the handler answers 2xx; any other outcome releases it. Requests
// without the header pass through, and so do requests made while the store
// is unreachable.
func Guard(store Claimer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(Header)
			if key == "" || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			key = "idem:order:" + scope(r) + ":" + key
			ok, err := store.Claim(r.Context(), key)
			if err != nil {
				log.Printf("WARN: idempotency store: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]string{"error": "duplicate submission"}) //nolint:errcheck
				return
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			completed := false
			defer func() {
				status := ww.Status()
				if status == 0 && completed {
					status = http.StatusOK
				}
				if status >= 200 && status < 300 {
					return
				}
				// A panicking handler leaves status 0 and releases too.
				if err := store.Release(context.WithoutCancel(r.Context()), key); err != nil {
					log.Printf("WARN: release idempotency key after status %d: %v", status, err)
				}
			}()
			next.ServeHTTP(ww, r)
			completed = true
		})
	}
}

// scope keeps keys of different businesses apart: the caller's business
// when authenticated, else the {bid} route param of public routes.
func scope(r *http.Request) string {
	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		return claims.BusinessID.String()
	}
	if bid := chi.URLParam(r, "bid"); bid != "" {
		return bid
	}
	return "anon"
}
