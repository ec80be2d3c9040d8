package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/superapp-gateway/internal/mocks"
	"github.com/dtroode/superapp-gateway/internal/model"
	"github.com/dtroode/superapp-gateway/internal/testutil"
)

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		svc := mocks.NewAccountService(t)
		identity := model.Identity{ID: uuid.New(), Email: "ann@example.com", Name: "Ann", Role: model.RoleStandard, IsActive: true}
		svc.On("Register", mock.Anything, model.RegisterIdentityParams{
			Email:    "ann@example.com",
			Password: "correct horse",
			Name:     "Ann",
		}).Return(identity, nil).Once()

		h := NewAuth(svc, "token", testutil.MakeNoopLogger())
		c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/register", registerRequest{
			Email:    "ann@example.com",
			Password: "correct horse",
			Name:     "Ann",
		})

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		out := decode[identityResponse](t, w)
		assert.Equal(t, identity.ID, out.ID)
		assert.Equal(t, "standard", out.Role)
		assert.NotContains(t, w.Body.String(), "correct horse")
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := mocks.NewAccountService(t)
		svc.On("Register", mock.Anything, mock.Anything).Return(model.Identity{}, model.ErrConflict).Once()

		h := NewAuth(svc, "token", testutil.MakeNoopLogger())
		c, w := newTestContext(t, http.MethodPost, "/", registerRequest{Email: "ann@example.com", Password: "password1", Name: "Ann"})

		h.Register(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("weak password", func(t *testing.T) {
		svc := mocks.NewAccountService(t)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(model.Identity{}, model.NewValidationError("password", "must be at least 8 characters")).Once()

		h := NewAuth(svc, "token", testutil.MakeNoopLogger())
		c, w := newTestContext(t, http.MethodPost, "/", registerRequest{Email: "ann@example.com", Password: "short", Name: "Ann"})

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "password", decode[errorResponse](t, w).Field)
	})
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	t.Run("sets cookie", func(t *testing.T) {
		svc := mocks.NewAccountService(t)
		identity := model.Identity{ID: uuid.New(), Email: "ann@example.com", Role: model.RoleStandard}
		pair := model.TokenPair{
			AccessToken:      "access",
			RefreshToken:     "refresh",
			AccessExpiresAt:  time.Now().Add(time.Hour),
			RefreshExpiresAt: time.Now().Add(24 * time.Hour),
		}
		svc.On("Login", mock.Anything, "ann@example.com", "password1").Return(identity, pair, nil).Once()

		h := NewAuth(svc, "token", testutil.MakeNoopLogger())
		c, w := newTestContext(t, http.MethodPost, "/", loginRequest{Email: "ann@example.com", Password: "password1"})

		h.Login(c)

		require.Equal(t, http.StatusOK, w.Code)
		out := decode[loginResponse](t, w)
		assert.Equal(t, "access", out.AccessToken)
		assert.Equal(t, "refresh", out.RefreshToken)
		assert.Equal(t, "Bearer", out.TokenType)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token", cookies[0].Name)
		assert.Equal(t, "access", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("no cookie configured", func(t *testing.T) {
		svc := mocks.NewAccountService(t)
		svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(model.Identity{}, model.TokenPair{AccessToken: "a"}, nil).Once()

		h := NewAuth(svc, "", testutil.MakeNoopLogger())
		c, w := newTestContext(t, http.MethodPost, "/", loginRequest{Email: "a@b.c", Password: "password1"})

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := mocks.NewAccountService(t)
		svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(model.Identity{}, model.TokenPair{}, model.ErrInvalidCredentials).Once()

		h := NewAuth(svc, "token", testutil.MakeNoopLogger())
		c, w := newTestContext(t, http.MethodPost, "/", loginRequest{Email: "a@b.c", Password: "nope"})

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid email or password", decode[errorResponse](t, w).Message)
	})
}

func TestAuth_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("issues access token", func(t *testing.T) {
		svc := mocks.NewAccountService(t)
		exp := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		svc.On("Refresh", mock.Anything, "refresh").
			Return("new-access", model.TokenClaims{Kind: model.TokenKindAccess, ExpiresAt: exp}, nil).Once()

		h := NewAuth(svc, "token", testutil.MakeNoopLogger())
		c, w := newTestContext(t, http.MethodPost, "/", refreshRequest{RefreshToken: "refresh"})

		h.Refresh(c)

		assert.Equal(t, http.StatusOK, w.Code)
		out := decode[refreshResponse](t, w)
		assert.Equal(t, "new-access", out.AccessToken)
		assert.True(t, exp.Equal(out.AccessExpiresAt))
	})

	t.Run("missing token", func(t *testing.T) {
		h := NewAuth(mocks.NewAccountService(t), "token", testutil.MakeNoopLogger())
		c, w := newTestContext(t, http.MethodPost, "/", refreshRequest{})

		h.Refresh(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		svc := mocks.NewAccountService(t)
		svc.On("Refresh", mock.Anything, "refresh").Return("", model.TokenClaims{}, model.ErrInvalidToken).Once()

		h := NewAuth(svc, "token", testutil.MakeNoopLogger())
		c, w := newTestContext(t, http.MethodPost, "/", refreshRequest{RefreshToken: "refresh"})

		h.Refresh(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAccountService(t)
	svc.On("Logout", mock.Anything, "refresh").Return(nil).Once()

	h := NewAuth(svc, "token", testutil.MakeNoopLogger())
	c, w := newTestContext(t, http.MethodPost, "/", refreshRequest{RefreshToken: "refresh"})

	h.Logout(c)

	// gin defers writing the header until the body is written or the chain ends
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
