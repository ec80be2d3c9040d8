package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/superapp-gateway/internal/mocks"
	"github.com/dtroode/superapp-gateway/internal/model"
	"github.com/dtroode/superapp-gateway/internal/repository/memory"
	"github.com/dtroode/superapp-gateway/internal/revocation"
	"github.com/dtroode/superapp-gateway/internal/testutil"
	"github.com/dtroode/superapp-gateway/internal/token"
)

func newTestAccount(identities model.IdentityStore) *Account {
	tokens := NewTokenService(token.NewJWT("secret", token.WithRefreshSecret("refresh")), revocation.NewMemory(time.Minute), testutil.MakeNoopLogger())
	a := NewAccount(identities, tokens, testutil.MakeNoopLogger())
	a.bcryptCost = bcrypt.MinCost
	return a
}

func TestAccount_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	account := newTestAccount(memory.NewIdentityRepository())

	identity, err := account.Register(ctx, model.RegisterIdentityParams{
		Email:    "Jane@Example.com",
		Password: "correct horse",
		Name:     "Jane",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", identity.Email)
	assert.Equal(t, model.RoleStandard, identity.Role)
	assert.True(t, identity.IsActive)
	assert.NotEqual(t, []byte("correct horse"), identity.PasswordHash)

	_, err = account.Register(ctx, model.RegisterIdentityParams{
		Email: "jane@example.com", Password: "another password", Name: "Jane 2",
	})
	assert.ErrorIs(t, err, model.ErrConflict)

	loggedIn, pair, err := account.Login(ctx, "jane@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, loggedIn.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	access, claims, err := account.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.Equal(t, identity.ID, claims.IdentityID)

	require.NoError(t, account.Logout(ctx, pair.RefreshToken))
	_, _, err = account.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestAccount_Register_Validation(t *testing.T) {
	account := newTestAccount(mocks.NewIdentityStore(t))

	tests := []struct {
		name   string
		params model.RegisterIdentityParams
		field  string
	}{
		{name: "bad email", params: model.RegisterIdentityParams{Email: "not-an-email", Password: "password1", Name: "X"}, field: "email"},
		{name: "display name email", params: model.RegisterIdentityParams{Email: "X <x@example.com>", Password: "password1", Name: "X"}, field: "email"},
		{name: "short password", params: model.RegisterIdentityParams{Email: "x@example.com", Password: "short", Name: "X"}, field: "password"},
		{name: "empty name", params: model.RegisterIdentityParams{Email: "x@example.com", Password: "password1", Name: " "}, field: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := account.Register(context.Background(), tt.params)

			var vErr *model.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestAccount_Login_Failures(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("right password"), bcrypt.MinCost)
	require.NoError(t, err)

	active := model.Identity{ID: uuid.New(), Email: "a@example.com", PasswordHash: hash, IsActive: true}
	inactive := model.Identity{ID: uuid.New(), Email: "b@example.com", PasswordHash: hash, IsActive: false}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(s *mocks.IdentityStore)
		wantErr  error
	}{
		{
			name: "unknown email", email: "nobody@example.com", password: "right password",
			setup: func(s *mocks.IdentityStore) {
				s.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.Identity{}, model.ErrNotFound).Once()
			},
			wantErr: model.ErrInvalidCredentials,
		},
		{
			name: "wrong password", email: active.Email, password: "wrong password",
			setup: func(s *mocks.IdentityStore) {
				s.On("GetByEmail", mock.Anything, active.Email).Return(active, nil).Once()
			},
			wantErr: model.ErrInvalidCredentials,
		},
		{
			name: "deactivated", email: inactive.Email, password: "right password",
			setup: func(s *mocks.IdentityStore) {
				s.On("GetByEmail", mock.Anything, inactive.Email).Return(inactive, nil).Once()
			},
			wantErr: model.ErrInvalidCredentials,
		},
		{
			name: "store failure", email: active.Email, password: "right password",
			setup: func(s *mocks.IdentityStore) {
				s.On("GetByEmail", mock.Anything, active.Email).Return(model.Identity{}, assert.AnError).Once()
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewIdentityStore(t)
			tt.setup(store)
			account := newTestAccount(store)

			_, _, err := account.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
