package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/superapp-gateway/internal/model"
)

// Metadata keys carrying the admitted identity inside incoming gRPC metadata.
const (
	identityIDKey   string = "x-identity-id"
	identityRoleKey string = "x-identity-role"
)

// Manager stores the admitted identity in gRPC incoming metadata. Values set by the
// authentication interceptor replace anything the client sent under the same keys.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a context whose incoming metadata carries identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.AuthenticatedIdentity) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	} else {
		md = md.Copy()
	}
	md.Set(identityIDKey, identity.ID.String())
	md.Set(identityRoleKey, string(identity.Role))

	return metadata.NewIncomingContext(ctx, md)
}

// GetIdentityFromContext reads the identity set by SetIdentityToContext.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.AuthenticatedIdentity, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return model.AuthenticatedIdentity{}, false
	}

	ids := md.Get(identityIDKey)
	roles := md.Get(identityRoleKey)
	if len(ids) == 0 || len(roles) == 0 {
		return model.AuthenticatedIdentity{}, false
	}

	id, err := uuid.Parse(ids[0])
	if err != nil {
		return model.AuthenticatedIdentity{}, false
	}
	role, err := model.ParseRole(roles[0])
	if err != nil {
		return model.AuthenticatedIdentity{}, false
	}

	return model.AuthenticatedIdentity{ID: id, Role: role}, true
}
