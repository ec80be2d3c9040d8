package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// TokenService issues, verifies and revokes session tokens. It composes the
// TokenManager with an optional Denylist; a nil denylist disables revocation.
type TokenService struct {
	manager  model.TokenManager
	denylist model.Denylist
	logger   *logger.Logger
}

func NewTokenService(manager model.TokenManager, denylist model.Denylist, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, denylist: denylist, logger: logger}
}

func (s *TokenService) IssueAccess(identityID uuid.UUID) (string, model.TokenClaims, error) {
	token, claims, err := s.manager.GenerateAccessToken(identityID)
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("issue access: %w", err)
	}
	return token, claims, nil
}

func (s *TokenService) IssueRefresh(identityID uuid.UUID) (string, model.TokenClaims, error) {
	token, claims, err := s.manager.GenerateRefreshToken(identityID)
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("issue refresh: %w", err)
	}
	return token, claims, nil
}

func (s *TokenService) IssuePair(identityID uuid.UUID) (model.TokenPair, error) {
	access, accessClaims, err := s.IssueAccess(identityID)
	if err != nil {
		return model.TokenPair{}, err
	}

	refresh, refreshClaims, err := s.IssueRefresh(identityID)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessClaims.ExpiresAt,
		RefreshExpiresAt: refreshClaims.ExpiresAt,
	}, nil
}

// Verify checks signature, expiry and revocation. Every token problem is reported as
// model.ErrInvalidToken; only a denylist failure yields a different error.
func (s *TokenService) Verify(ctx context.Context, token string) (model.TokenClaims, error) {
	claims, err := s.manager.Parse(token)
	if err != nil {
		s.logger.Debug("Token service: token rejected", "error", err.Error())
		return model.TokenClaims{}, model.ErrInvalidToken
	}

	if s.denylist == nil || claims.ID == "" {
		return claims, nil
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		s.logger.Debug("Token service: revoked token presented",
			"identity_id", claims.IdentityID,
			"jti", claims.ID)
		return model.TokenClaims{}, model.ErrInvalidToken
	}

	return claims, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh token
// itself stays valid until it expires or is revoked.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, model.TokenClaims, error) {
	claims, err := s.Verify(ctx, refreshToken)
	if err != nil {
		return "", model.TokenClaims{}, err
	}
	if claims.Kind != model.TokenKindRefresh {
		return "", model.TokenClaims{}, model.ErrInvalidToken
	}

	return s.IssueAccess(claims.IdentityID)
}

// Revoke puts the token's jti on the denylist until the token expires.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	claims, err := s.Verify(ctx, token)
	if err != nil {
		return err
	}
	if s.denylist == nil {
		s.logger.Warn("Token service: revocation requested but no denylist configured",
			"identity_id", claims.IdentityID)
		return nil
	}

	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("Token service: token revoked",
		"identity_id", claims.IdentityID,
		"kind", claims.Kind)

	return nil
}
