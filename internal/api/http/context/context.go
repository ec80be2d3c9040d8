package context

import (
	"context"

	"github.com/dtroode/superapp-gateway/internal/model"
)

type identityKey struct{}

// Manager stores the admitted identity in a request context.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a copy of ctx carrying identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.AuthenticatedIdentity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the identity attached by SetIdentityToContext.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.AuthenticatedIdentity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.AuthenticatedIdentity)
	return identity, ok
}
