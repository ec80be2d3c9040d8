package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// AccountService defines account registration and session operations.
type AccountService interface {
	Register(ctx context.Context, params model.RegisterIdentityParams) (model.Identity, error)
	Login(ctx context.Context, email, password string) (model.Identity, model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, model.TokenClaims, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Auth handles HTTP endpoints for accounts and sessions.
type Auth struct {
	accountService AccountService
	cookieName     string
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler. A non-empty cookieName makes Login also set the
// access token as an HTTP-only cookie.
func NewAuth(accountService AccountService, cookieName string, logger *logger.Logger) *Auth {
	return &Auth{
		accountService: accountService,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// Register creates a standard account.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	identity, err := h.accountService.Register(c.Request.Context(), model.RegisterIdentityParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.logger.Info("Auth handler: registration failed", "error", err.Error())
		handleError(c, h.logger, err)
		return
	}

	h.logger.Info("Auth handler: identity registered", "identity_id", identity.ID)
	c.JSON(http.StatusCreated, toIdentityResponse(identity))
}

// Login exchanges email and password for a token pair.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	identity, pair, err := h.accountService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	if h.cookieName != "" {
		maxAge := int(time.Until(pair.AccessExpiresAt).Seconds())
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(h.cookieName, pair.AccessToken, maxAge, "/", "", c.Request.TLS != nil, true)
	}

	c.JSON(http.StatusOK, loginResponse{
		Identity:         toIdentityResponse(identity),
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		TokenType:        "Bearer",
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	})
}

// Refresh issues a new access token for a valid refresh token.
func (h *Auth) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		badRequest(c, "refresh_token is required")
		return
	}

	access, claims, err := h.accountService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, refreshResponse{
		AccessToken:     access,
		TokenType:       "Bearer",
		AccessExpiresAt: claims.ExpiresAt,
	})
}

// Logout revokes the refresh token and clears the session cookie.
func (h *Auth) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		badRequest(c, "refresh_token is required")
		return
	}

	if err := h.accountService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		handleError(c, h.logger, err)
		return
	}

	if h.cookieName != "" {
		c.SetCookie(h.cookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	}
	c.Status(http.StatusNoContent)
}
