package handler

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// QuotaVault defines the vault operations sibling services may use.
type QuotaVault interface {
	FindActive(ctx context.Context, ownerID uuid.UUID, service model.Service) (model.Credential, error)
	ReportUsage(ctx context.Context, credential model.Credential, amount int64) (model.Credential, error)
}

// TokenVerifier verifies session tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (model.TokenClaims, error)
}

// IdentityLookup loads identities by id.
type IdentityLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Identity, error)
}

var _ CredentialsServer = (*Credentials)(nil)

// Credentials handles the internal credentials service.
type Credentials struct {
	vault          QuotaVault
	verifier       TokenVerifier
	identities     IdentityLookup
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewCredentials creates a new Credentials handler.
func NewCredentials(vault QuotaVault, verifier TokenVerifier, identities IdentityLookup, contextManager model.ContextManager, logger *logger.Logger) *Credentials {
	return &Credentials{
		vault:          vault,
		verifier:       verifier,
		identities:     identities,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Introspect reports whether token is a live access token of an active identity.
// Unusable tokens yield {"active": false} rather than an error.
func (h *Credentials) Introspect(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	inactive, _ := structpb.NewStruct(map[string]any{"active": false})

	claims, err := h.verifier.Verify(ctx, req.GetValue())
	if err != nil {
		if errors.Is(err, model.ErrInvalidToken) {
			return inactive, nil
		}
		return nil, h.handleError("Introspect", err)
	}
	if claims.Kind != model.TokenKindAccess {
		return inactive, nil
	}

	identity, err := h.identities.GetByID(ctx, claims.IdentityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return inactive, nil
		}
		return nil, h.handleError("Introspect", err)
	}
	if !identity.IsActive {
		return inactive, nil
	}

	return structpb.NewStruct(map[string]any{
		"active":      true,
		"identity_id": identity.ID.String(),
		"role":        string(identity.Role),
		"kind":        string(claims.Kind),
		"token_id":    claims.ID,
		"expires_at":  claims.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Quota returns the quota status of the caller's active credential for a service.
func (h *Credentials) Quota(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	identity, ok := h.contextManager.GetIdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}

	service, err := model.ParseService(req.GetValue())
	if err != nil {
		return nil, h.handleError("Quota", err)
	}

	credential, err := h.vault.FindActive(ctx, identity.ID, service)
	if err != nil {
		return nil, h.handleError("Quota", err)
	}

	return quotaStruct(credential)
}

// ReportUsage adds {"amount": n} tokens to the caller's active credential of
// {"service": s} and returns the updated quota status.
func (h *Credentials) ReportUsage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	identity, ok := h.contextManager.GetIdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}

	fields := req.GetFields()
	service, err := model.ParseService(fields["service"].GetStringValue())
	if err != nil {
		return nil, h.handleError("ReportUsage", err)
	}

	amountValue, ok := fields["amount"]
	if !ok {
		return nil, h.handleError("ReportUsage", model.NewValidationError("amount", "is required"))
	}
	amount := amountValue.GetNumberValue()
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit in an int64
	if amount != math.Trunc(amount) || amount >= math.MaxInt64 {
		return nil, h.handleError("ReportUsage", model.NewValidationError("amount", "must be a whole number"))
	}

	credential, err := h.vault.FindActive(ctx, identity.ID, service)
	if err != nil {
		return nil, h.handleError("ReportUsage", err)
	}

	updated, err := h.vault.ReportUsage(ctx, credential, int64(amount))
	if err != nil {
		return nil, h.handleError("ReportUsage", err)
	}

	h.logger.Debug("Credentials handler: usage reported",
		"credential_id", updated.ID,
		"amount", int64(amount),
		"quota_remaining", updated.QuotaRemaining())

	return quotaStruct(updated)
}

func quotaStruct(c model.Credential) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"credential_id":         c.ID.String(),
		"service":               string(c.Service),
		"masked_key":            c.MaskedKey,
		"quota_limit":           c.QuotaLimit,
		"quota_used":            c.QuotaUsed,
		"quota_remaining":       c.QuotaRemaining(),
		"quota_percentage_used": c.QuotaPercentageUsed(),
		"quota_reset_at":        c.QuotaResetAt.UTC().Format(time.RFC3339),
		"is_active":             c.IsActive,
	})
}
