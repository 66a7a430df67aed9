package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// placeholder stored while the first request with a key is still in flight.
// Callers seeing it should treat the operation as in progress, not replay a
// response.
const processingPlaceholder = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis. It
// guards deposit and withdrawal requests against client retries creating
// duplicate ledger transactions.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "bankledger:idempotency:",
	}
}

// CheckAndSet atomically checks if key exists, sets if not. With a nil
// response it locks the key with a placeholder so concurrent requests
// carrying the same key do not both reach the ledger.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		return true, existing, nil
	}
	if err != redis.Nil {
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	set, err := s.client.SetNX(ctx, fullKey, processingPlaceholder, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !set {
		// Lost the race: another request claimed the key between the Get
		// and the SetNX.
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && err != redis.Nil {
			return false, nil, err
		}
		return true, existing, nil
	}

	return false, nil, nil
}

// Update replaces the placeholder with the final response once the ledger
// operation has committed.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}

// Delete releases a key after a failed operation so the client can retry
// with the same Idempotency-Key.
func (s *IdempotencyStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
