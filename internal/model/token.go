package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	ID         string
	IdentityID uuid.UUID
	Kind       TokenKind
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(identityID uuid.UUID) (string, TokenClaims, error)
	GenerateRefreshToken(identityID uuid.UUID) (string, TokenClaims, error)
	Parse(token string) (TokenClaims, error)
}

// Denylist stores revoked token IDs until the token would expire anyway.
type Denylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
