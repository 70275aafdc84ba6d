package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "revoked:"
	genPrefix = "tokengen:"
)

// RevocationStore implements repository.RevocationStore using Redis. Each
// revoked jti becomes a key with a TTL of the maximum token lifetime, so
// entries prune themselves once no token carrying the jti can still be valid.
type RevocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationStore creates a Redis-backed revocation store. ttl should be
// max(access TTL, refresh TTL).
func NewRevocationStore(client *redis.Client, ttl time.Duration) *RevocationStore {
	return &RevocationStore{
		client: client,
		ttl:    ttl,
	}
}

// Revoke adds a jti to the store. Re-revoking an already revoked jti only
// refreshes its TTL, so the operation is idempotent.
func (s *RevocationStore) Revoke(ctx context.Context, jti string) error {
	if err := s.client.Set(ctx, keyPrefix+jti, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke jti: %w", err)
	}
	return nil
}

// IsRevoked reports whether a jti is in the store.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redis check jti: %w", err)
	}
	return n > 0, nil
}

// RevokeAllForUser advances the subject's token generation. The key keeps the
// same TTL as jti entries: once it prunes, every token minted under an older
// generation has expired on its own.
func (s *RevocationStore) RevokeAllForUser(ctx context.Context, subject string) error {
	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, genPrefix+subject)
	pipe.Expire(ctx, genPrefix+subject, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis bump token generation: %w", err)
	}
	return nil
}

// Generation returns the subject's current token generation, zero when the
// subject has never had a bulk revocation.
func (s *RevocationStore) Generation(ctx context.Context, subject string) (int64, error) {
	n, err := s.client.Get(ctx, genPrefix+subject).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get token generation: %w", err)
	}
	return n, nil
}
