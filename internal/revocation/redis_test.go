package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb), mr
}

func TestRedis_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	ttl := mr.TTL(redisKeyPrefix + "jti-1")
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestRedis_EntryExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Revoke(ctx, "jti", time.Now().Add(10*time.Minute)))
	mr.FastForward(11 * time.Minute)

	revoked, err := r.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedis_ExpiredTokenIsNotStored(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists(redisKeyPrefix+"old"))
}

func TestRedis_BackendFailure(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	r := NewRedis(rdb)
	mr.Close()

	_, err = r.IsRevoked(ctx, "jti")
	require.Error(t, err)

	err = r.Revoke(ctx, "jti", time.Now().Add(time.Hour))
	require.Error(t, err)
}
