// Package revocation provides denylist backends for revoked token IDs.
package revocation

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dtroode/superapp-gateway/internal/model"
)

var _ model.Denylist = (*Memory)(nil)

// Memory keeps revoked token IDs in process memory until their expiry.
type Memory struct {
	cache *cache.Cache
	now   func() time.Time
}

// NewMemory creates an in-memory denylist. Expired entries are purged every cleanupInterval.
func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
		now:   time.Now,
	}
}

// Revoke records jti until expiresAt. Already expired tokens are not stored.
func (m *Memory) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	m.cache.Set(jti, struct{}{}, ttl)
	return nil
}

// IsRevoked reports whether jti is on the denylist.
func (m *Memory) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, found := m.cache.Get(jti)
	return found, nil
}
