package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/superapp-gateway/internal/model"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()
	identity := model.AuthenticatedIdentity{ID: uuid.New(), Role: model.RoleAdmin}

	ctx := m.SetIdentityToContext(context.Background(), identity)

	got, ok := m.GetIdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestManager_Missing(t *testing.T) {
	m := NewManager()

	_, ok := m.GetIdentityFromContext(context.Background())
	assert.False(t, ok)
}
