package revocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store reads the platform's token-revocation cache. The auth subsystem writes
// revoked tokens under a key with the token's remaining TTL; this service only
// ever reads.
type Store interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

const keyPrefix = "revoked_token:"

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// IsRevoked treats a missing key as not-revoked: the cache is false-negative
// safe because entries expire together with the tokens they blacklist.
func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("revocation lookup failed: %w", err)
	}
	return true, nil
}
