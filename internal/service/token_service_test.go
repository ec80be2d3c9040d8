package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/superapp-gateway/internal/mocks"
	"github.com/dtroode/superapp-gateway/internal/model"
	"github.com/dtroode/superapp-gateway/internal/revocation"
	"github.com/dtroode/superapp-gateway/internal/testutil"
	"github.com/dtroode/superapp-gateway/internal/token"
)

func TestTokenService_IssuePair(t *testing.T) {
	identityID := uuid.New()
	accessExp := time.Now().Add(time.Hour)
	refreshExp := time.Now().Add(24 * time.Hour)

	manager := mocks.NewTokenManager(t)
	manager.On("GenerateAccessToken", identityID).
		Return("access", model.TokenClaims{ID: "a", ExpiresAt: accessExp}, nil).Once()
	manager.On("GenerateRefreshToken", identityID).
		Return("refresh", model.TokenClaims{ID: "r", ExpiresAt: refreshExp}, nil).Once()

	svc := NewTokenService(manager, nil, testutil.MakeNoopLogger())

	pair, err := svc.IssuePair(identityID)
	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
	assert.Equal(t, accessExp, pair.AccessExpiresAt)
	assert.Equal(t, refreshExp, pair.RefreshExpiresAt)
}

func TestTokenService_IssuePair_ManagerError(t *testing.T) {
	identityID := uuid.New()

	manager := mocks.NewTokenManager(t)
	manager.On("GenerateAccessToken", identityID).Return("", model.TokenClaims{}, assert.AnError).Once()

	svc := NewTokenService(manager, nil, testutil.MakeNoopLogger())

	_, err := svc.IssuePair(identityID)
	require.ErrorIs(t, err, assert.AnError)
}

func TestTokenService_Verify(t *testing.T) {
	ctx := context.Background()
	claims := model.TokenClaims{ID: "jti-1", IdentityID: uuid.New(), Kind: model.TokenKindAccess}

	tests := []struct {
		name    string
		setup   func(m *mocks.TokenManager, d *mocks.Denylist)
		wantErr error
		anyErr  bool
	}{
		{
			name: "valid",
			setup: func(m *mocks.TokenManager, d *mocks.Denylist) {
				m.On("Parse", "tok").Return(claims, nil).Once()
				d.On("IsRevoked", mock.Anything, "jti-1").Return(false, nil).Once()
			},
		},
		{
			name: "parse failure collapses to invalid token",
			setup: func(m *mocks.TokenManager, _ *mocks.Denylist) {
				m.On("Parse", "tok").Return(model.TokenClaims{}, assert.AnError).Once()
			},
			wantErr: model.ErrInvalidToken,
		},
		{
			name: "revoked",
			setup: func(m *mocks.TokenManager, d *mocks.Denylist) {
				m.On("Parse", "tok").Return(claims, nil).Once()
				d.On("IsRevoked", mock.Anything, "jti-1").Return(true, nil).Once()
			},
			wantErr: model.ErrInvalidToken,
		},
		{
			name: "denylist failure is not an invalid token",
			setup: func(m *mocks.TokenManager, d *mocks.Denylist) {
				m.On("Parse", "tok").Return(claims, nil).Once()
				d.On("IsRevoked", mock.Anything, "jti-1").Return(false, assert.AnError).Once()
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := mocks.NewTokenManager(t)
			denylist := mocks.NewDenylist(t)
			tt.setup(manager, denylist)

			svc := NewTokenService(manager, denylist, testutil.MakeNoopLogger())
			got, err := svc.Verify(ctx, "tok")

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
			case tt.anyErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, model.ErrInvalidToken)
			default:
				require.NoError(t, err)
				assert.Equal(t, claims, got)
			}
		})
	}
}

func TestTokenService_Refresh(t *testing.T) {
	ctx := context.Background()
	identityID := uuid.New()

	t.Run("refresh token yields access token", func(t *testing.T) {
		manager := mocks.NewTokenManager(t)
		manager.On("Parse", "refresh").
			Return(model.TokenClaims{IdentityID: identityID, Kind: model.TokenKindRefresh}, nil).Once()
		manager.On("GenerateAccessToken", identityID).
			Return("access", model.TokenClaims{IdentityID: identityID, Kind: model.TokenKindAccess}, nil).Once()

		svc := NewTokenService(manager, nil, testutil.MakeNoopLogger())

		access, claims, err := svc.Refresh(ctx, "refresh")
		require.NoError(t, err)
		assert.Equal(t, "access", access)
		assert.Equal(t, model.TokenKindAccess, claims.Kind)
	})

	t.Run("access token is refused", func(t *testing.T) {
		manager := mocks.NewTokenManager(t)
		manager.On("Parse", "access").
			Return(model.TokenClaims{IdentityID: identityID, Kind: model.TokenKindAccess}, nil).Once()

		svc := NewTokenService(manager, nil, testutil.MakeNoopLogger())

		_, _, err := svc.Refresh(ctx, "access")
		assert.Equal(t, model.ErrInvalidToken, err)
	})
}

func TestTokenService_RevokeWithRealComponents(t *testing.T) {
	ctx := context.Background()
	denylist := revocation.NewMemory(time.Minute)
	svc := NewTokenService(token.NewJWT("secret", token.WithRefreshSecret("refresh")), denylist, testutil.MakeNoopLogger())
	identityID := uuid.New()

	pair, err := svc.IssuePair(identityID)
	require.NoError(t, err)

	access, _, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.Verify(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, identityID, claims.IdentityID)

	require.NoError(t, svc.Revoke(ctx, pair.RefreshToken))

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, model.ErrInvalidToken, err)

	// revoking the refresh token leaves issued access tokens alone
	_, err = svc.Verify(ctx, access)
	require.NoError(t, err)

	assert.Equal(t, model.ErrInvalidToken, svc.Revoke(ctx, "garbage"))
}

func TestTokenService_RevokeWithoutDenylist(t *testing.T) {
	svc := NewTokenService(token.NewJWT("secret"), nil, testutil.MakeNoopLogger())

	pair, err := svc.IssuePair(uuid.New())
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), pair.RefreshToken))

	_, _, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
}
