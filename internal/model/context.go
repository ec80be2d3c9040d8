package model

import "context"

// ContextManager attaches the admitted identity to a request context.
type ContextManager interface {
	SetIdentityToContext(ctx context.Context, identity AuthenticatedIdentity) context.Context
	GetIdentityFromContext(ctx context.Context) (AuthenticatedIdentity, bool)
}
