package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/superapp-gateway/internal/model"
)

const redisKeyPrefix = "superapp:revoked:"

var _ model.Denylist = (*Redis)(nil)

// Redis keeps revoked token IDs in Redis with a TTL equal to the remaining token lifetime,
// so every gateway instance sharing the Redis sees the same revocations.
type Redis struct {
	rdb redis.Cmdable
	now func() time.Time
}

// NewRedis creates a Redis-backed denylist.
func NewRedis(rdb redis.Cmdable) *Redis {
	return &Redis{rdb: rdb, now: time.Now}
}

func redisKey(jti string) string { return redisKeyPrefix + jti }

// Revoke records jti until expiresAt.
func (r *Redis) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.rdb.Set(ctx, redisKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti is on the denylist.
func (r *Redis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, redisKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n == 1, nil
}
