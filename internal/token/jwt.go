package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/superapp-gateway/internal/model"
)

// Default lifetimes used when no TTL is configured.
const (
	DefaultAccessTTL  = 24 * time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims represents JWT claims with token type and identity ID.
type Claims struct {
	jwt.RegisteredClaims
	IdentityID uuid.UUID `json:"identity_id"`
	TokenType  string    `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC. Refresh tokens are signed with
// their own secret when one is configured.
type JWT struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// Option customizes a JWT manager.
type Option func(*JWT)

// WithRefreshSecret sets a distinct refresh-token signing secret. Empty keeps the access secret.
func WithRefreshSecret(secret string) Option {
	return func(j *JWT) {
		if secret != "" {
			j.refreshSecret = []byte(secret)
		}
	}
}

// WithAccessTTL overrides the access token lifetime. Non-positive values are ignored.
func WithAccessTTL(ttl time.Duration) Option {
	return func(j *JWT) {
		if ttl > 0 {
			j.accessTTL = ttl
		}
	}
}

// WithRefreshTTL overrides the refresh token lifetime. Non-positive values are ignored.
func WithRefreshTTL(ttl time.Duration) Option {
	return func(j *JWT) {
		if ttl > 0 {
			j.refreshTTL = ttl
		}
	}
}

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{
		accessSecret:  []byte(secretKey),
		refreshSecret: []byte(secretKey),
		accessTTL:     DefaultAccessTTL,
		refreshTTL:    DefaultRefreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// GenerateAccessToken creates a short-lived access token.
func (j *JWT) GenerateAccessToken(identityID uuid.UUID) (string, model.TokenClaims, error) {
	return j.generate(identityID, model.TokenKindAccess, j.accessTTL, j.accessSecret)
}

// GenerateRefreshToken creates a long-lived refresh token.
func (j *JWT) GenerateRefreshToken(identityID uuid.UUID) (string, model.TokenClaims, error) {
	return j.generate(identityID, model.TokenKindRefresh, j.refreshTTL, j.refreshSecret)
}

func (j *JWT) generate(identityID uuid.UUID, kind model.TokenKind, ttl time.Duration, secret []byte) (string, model.TokenClaims, error) {
	now := j.now().Truncate(time.Second)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identityID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		IdentityID: identityID,
		TokenType:  string(kind),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return tokenString, model.TokenClaims{
		ID:         claims.ID,
		IdentityID: identityID,
		Kind:       kind,
		IssuedAt:   now,
		ExpiresAt:  now.Add(ttl),
	}, nil
}

// Parse validates signature and expiry and returns the token claims. The signing secret
// is selected by the token type.
func (j *JWT) Parse(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		switch model.TokenKind(claims.TokenType) {
		case model.TokenKindAccess:
			return j.accessSecret, nil
		case model.TokenKindRefresh:
			return j.refreshSecret, nil
		default:
			return nil, fmt.Errorf("unknown token type %q", claims.TokenType)
		}
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return model.TokenClaims{}, errors.New("token is invalid")
	}
	if claims.IdentityID == uuid.Nil {
		return model.TokenClaims{}, errors.New("token has no identity")
	}

	out := model.TokenClaims{
		ID:         claims.ID,
		IdentityID: claims.IdentityID,
		Kind:       model.TokenKind(claims.TokenType),
		ExpiresAt:  claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}
