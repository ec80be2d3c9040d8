// Package gate implements the per-request access check: token verification, identity
// state, role membership and the sliding-window throttle.
package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/metrics"
	"github.com/dtroode/superapp-gateway/internal/model"
	"github.com/dtroode/superapp-gateway/internal/ratelimit"
)

// DefaultLookupTimeout bounds the identity lookup when the request carries no earlier deadline.
const DefaultLookupTimeout = 5 * time.Second

// TokenVerifier verifies session tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (model.TokenClaims, error)
}

// IdentityLookup loads identities by id.
type IdentityLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Identity, error)
}

// Throttler admits or rejects a request for a key.
type Throttler interface {
	Allow(key string) ratelimit.Decision
}

// Request carries the raw credentials of an inbound call.
type Request struct {
	// Authorization is the raw Authorization header value.
	Authorization string
	// CookieToken is the session token carried in a cookie, if any.
	CookieToken string
	// Roles restricts admission to the given roles. Empty admits every role.
	Roles model.RoleSet
}

type Gate struct {
	verifier      TokenVerifier
	identities    IdentityLookup
	throttler     Throttler
	logger        *logger.Logger
	metrics       *metrics.Metrics
	lookupTimeout time.Duration
}

type Option func(*Gate)

func WithLookupTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.lookupTimeout = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

func New(verifier TokenVerifier, identities IdentityLookup, throttler Throttler, logger *logger.Logger, opts ...Option) *Gate {
	g := &Gate{
		verifier:      verifier,
		identities:    identities,
		throttler:     throttler,
		logger:        logger,
		lookupTimeout: DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Admit runs the full check. It returns the admitted identity, a *Rejection, or an
// internal error when a dependency failed.
func (g *Gate) Admit(ctx context.Context, req Request) (model.AuthenticatedIdentity, error) {
	identity, err := g.admit(ctx, req)
	if rej, ok := AsRejection(err); ok {
		g.metrics.RecordGateDecision(outcome(rej.Reason))
		g.logger.Debug("Gate: request rejected",
			"reason", rej.Reason.String(),
			"message", rej.Message)
	} else if err == nil {
		g.metrics.RecordGateDecision(metrics.OutcomeAdmitted)
	}
	return identity, err
}

func (g *Gate) admit(ctx context.Context, req Request) (model.AuthenticatedIdentity, error) {
	token := ExtractBearer(req.Authorization)
	if token == "" {
		token = strings.TrimSpace(req.CookieToken)
	}
	if token == "" {
		return model.AuthenticatedIdentity{}, reject(Unauthenticated, "authentication required")
	}

	claims, err := g.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrInvalidToken) {
			return model.AuthenticatedIdentity{}, reject(Unauthenticated, "invalid or expired token")
		}
		return model.AuthenticatedIdentity{}, fmt.Errorf("failed to verify token: %w", err)
	}
	if claims.Kind != model.TokenKindAccess {
		return model.AuthenticatedIdentity{}, reject(Unauthenticated, "invalid or expired token")
	}

	identity, err := g.lookup(ctx, claims.IdentityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AuthenticatedIdentity{}, reject(Unauthenticated, "identity no longer exists")
		}
		return model.AuthenticatedIdentity{}, err
	}
	if !identity.IsActive {
		return model.AuthenticatedIdentity{}, reject(Unauthenticated, "account deactivated")
	}

	if !req.Roles.Allows(identity.Role) {
		return model.AuthenticatedIdentity{}, reject(Forbidden, "insufficient role")
	}

	// nothing is recorded in the throttle for a request that is already gone
	if err := ctx.Err(); err != nil {
		return model.AuthenticatedIdentity{}, err
	}

	if err := g.throttle("identity:" + identity.ID.String()); err != nil {
		return model.AuthenticatedIdentity{}, err
	}

	return model.AuthenticatedIdentity{ID: identity.ID, Role: identity.Role}, nil
}

// ThrottleOrigin applies the throttle keyed by origin address. It guards routes that run
// before a caller has an identity.
func (g *Gate) ThrottleOrigin(ctx context.Context, origin string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := g.throttle("origin:" + origin)
	if err != nil {
		g.metrics.RecordGateDecision(metrics.OutcomeRateLimited)
	}
	return err
}

func (g *Gate) throttle(key string) error {
	decision := g.throttler.Allow(key)
	if decision.Allowed {
		return nil
	}

	g.metrics.RecordThrottleRejection()
	g.logger.Info("Gate: request throttled",
		"key", key,
		"limit", decision.Limit,
		"retry_after", decision.RetryAfter)

	rej := reject(RateLimited, "too many requests")
	rej.RetryAfter = decision.RetryAfter
	return rej
}

func (g *Gate) lookup(ctx context.Context, id uuid.UUID) (model.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, g.lookupTimeout)
	defer cancel()

	identity, err := g.identities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Identity{}, model.ErrNotFound
		}
		return model.Identity{}, fmt.Errorf("failed to load identity: %w", err)
	}
	return identity, nil
}

// ExtractBearer returns the token of a "Bearer <token>" header value, or "".
func ExtractBearer(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func outcome(r Reason) string {
	switch r {
	case Forbidden:
		return metrics.OutcomeForbidden
	case RateLimited:
		return metrics.OutcomeRateLimited
	default:
		return metrics.OutcomeUnauthenticated
	}
}
