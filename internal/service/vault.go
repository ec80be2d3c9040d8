package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/metrics"
	"github.com/dtroode/superapp-gateway/internal/model"
)

const (
	maskPrefixLen = 5
	maskSuffixLen = 4
)

// Vault owns credential records: it encrypts keys on write, derives masked displays,
// accounts quota and is the only place a stored key is decrypted.
type Vault struct {
	store        model.CredentialStore
	cipher       model.SecretCipher
	logger       *logger.Logger
	metrics      *metrics.Metrics
	defaultQuota int64
	now          func() time.Time
}

// VaultOption customizes a Vault.
type VaultOption func(*Vault)

// WithDefaultQuota sets the limit used when a registration carries none.
func WithDefaultQuota(limit int64) VaultOption {
	return func(v *Vault) {
		if limit >= 0 {
			v.defaultQuota = limit
		}
	}
}

func WithVaultClock(now func() time.Time) VaultOption {
	return func(v *Vault) {
		v.now = now
	}
}

func WithVaultMetrics(m *metrics.Metrics) VaultOption {
	return func(v *Vault) {
		v.metrics = m
	}
}

func NewVault(store model.CredentialStore, cipher model.SecretCipher, logger *logger.Logger, opts ...VaultOption) *Vault {
	v := &Vault{
		store:        store,
		cipher:       cipher,
		logger:       logger,
		defaultQuota: model.DefaultQuotaLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Vault) Register(ctx context.Context, params model.RegisterCredentialParams) (model.Credential, error) {
	credential, err := v.register(ctx, params)
	v.metrics.RecordVaultOperation("register", err)
	return credential, err
}

func (v *Vault) register(ctx context.Context, params model.RegisterCredentialParams) (model.Credential, error) {
	if params.OwnerID == uuid.Nil {
		return model.Credential{}, model.NewValidationError("owner_id", "is required")
	}
	if _, err := model.ParseService(string(params.Service)); err != nil {
		return model.Credential{}, err
	}
	if strings.TrimSpace(params.PlaintextKey) == "" {
		return model.Credential{}, model.NewValidationError("api_key", "must not be empty")
	}

	limit := v.defaultQuota
	if params.QuotaLimit != nil {
		if *params.QuotaLimit < 0 {
			return model.Credential{}, model.NewValidationError("quota_limit", "must not be negative")
		}
		limit = *params.QuotaLimit
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = string(params.Service)
	}

	ciphertext, err := v.cipher.Encrypt(params.PlaintextKey)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to encrypt credential: %w", err)
	}

	now := v.now()
	credential := model.Credential{
		ID:           uuid.New(),
		OwnerID:      params.OwnerID,
		Service:      params.Service,
		Name:         name,
		Ciphertext:   ciphertext,
		MaskedKey:    MaskKey(params.PlaintextKey),
		QuotaLimit:   limit,
		QuotaResetAt: model.NextQuotaReset(now),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	credential, err = v.store.Create(ctx, credential)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to save credential: %w", err)
	}

	v.logger.Info("Vault: credential registered",
		"credential_id", credential.ID,
		"owner_id", credential.OwnerID,
		"service", credential.Service,
		"masked_key", credential.MaskedKey)

	return credential, nil
}

// FindActive returns the owner's most recently registered active credential for service.
func (v *Vault) FindActive(ctx context.Context, ownerID uuid.UUID, service model.Service) (model.Credential, error) {
	credential, err := v.store.FindActive(ctx, ownerID, service)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Credential{}, err
		}
		return model.Credential{}, fmt.Errorf("failed to find active credential: %w", err)
	}
	return credential, nil
}

// Get returns a credential owned by ownerID. Records of other owners are reported as not found.
func (v *Vault) Get(ctx context.Context, ownerID, id uuid.UUID) (model.Credential, error) {
	credential, err := v.GetByID(ctx, id)
	if err != nil {
		return model.Credential{}, err
	}
	if credential.OwnerID != ownerID {
		return model.Credential{}, model.ErrNotFound
	}
	return credential, nil
}

// GetByID returns a credential regardless of owner.
func (v *Vault) GetByID(ctx context.Context, id uuid.UUID) (model.Credential, error) {
	credential, err := v.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Credential{}, err
		}
		return model.Credential{}, fmt.Errorf("failed to get credential by id: %w", err)
	}
	return credential, nil
}

func (v *Vault) List(ctx context.Context, ownerID uuid.UUID) ([]model.Credential, error) {
	credentials, err := v.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	return credentials, nil
}

// DecryptForUse returns the plaintext key of an active credential. The result must not
// be stored or logged.
func (v *Vault) DecryptForUse(credential model.Credential) (string, error) {
	if !credential.IsActive {
		v.metrics.RecordVaultOperation("decrypt", model.ErrInactiveCredential)
		return "", model.ErrInactiveCredential
	}

	plaintext, err := v.cipher.Decrypt(credential.Ciphertext)
	v.metrics.RecordVaultOperation("decrypt", err)
	if err != nil {
		v.logger.Error("Vault: failed to decrypt credential",
			"credential_id", credential.ID,
			"owner_id", credential.OwnerID)
		return "", model.ErrDecryption
	}

	return plaintext, nil
}

// ReportUsage adds amount to the used quota. Usage beyond the limit is accepted, but an
// amount that cannot be added to the current usage without overflow is refused.
func (v *Vault) ReportUsage(ctx context.Context, credential model.Credential, amount int64) (model.Credential, error) {
	if amount < 0 {
		return model.Credential{}, model.NewValidationError("amount", "must not be negative")
	}
	if credential.QuotaUsed > math.MaxInt64-amount {
		return model.Credential{}, model.NewValidationError("amount", "exceeds the representable usage")
	}

	updated, err := v.store.IncrementUsage(ctx, credential.ID, amount)
	v.metrics.RecordVaultOperation("report_usage", err)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Credential{}, err
		}
		return model.Credential{}, fmt.Errorf("failed to report usage: %w", err)
	}

	v.logger.Debug("Vault: usage reported",
		"credential_id", updated.ID,
		"amount", amount,
		"quota_used", updated.QuotaUsed,
		"quota_limit", updated.QuotaLimit)

	return updated, nil
}

// ResetQuota zeroes used quota and schedules the next reset one month from now.
func (v *Vault) ResetQuota(ctx context.Context, credential model.Credential) (model.Credential, error) {
	updated, err := v.store.ResetQuota(ctx, credential.ID, model.NextQuotaReset(v.now()))
	v.metrics.RecordVaultOperation("reset_quota", err)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Credential{}, err
		}
		return model.Credential{}, fmt.Errorf("failed to reset quota: %w", err)
	}

	v.logger.Info("Vault: quota reset",
		"credential_id", updated.ID,
		"next_reset_at", updated.QuotaResetAt)

	return updated, nil
}

// ResetDueQuota resets a credential listed as due, unless it was reset or deactivated
// since. That case is reported as model.ErrNotFound.
func (v *Vault) ResetDueQuota(ctx context.Context, credential model.Credential) (model.Credential, error) {
	now := v.now()
	updated, err := v.store.ResetDueQuota(ctx, credential.ID, now, model.NextQuotaReset(now))
	if errors.Is(err, model.ErrNotFound) {
		return model.Credential{}, err
	}
	v.metrics.RecordVaultOperation("reset_quota", err)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to reset quota: %w", err)
	}

	v.logger.Info("Vault: quota reset",
		"credential_id", updated.ID,
		"next_reset_at", updated.QuotaResetAt)

	return updated, nil
}

// Deactivate soft-deletes a credential. There is no way back.
func (v *Vault) Deactivate(ctx context.Context, credential model.Credential) (model.Credential, error) {
	updated, err := v.store.Deactivate(ctx, credential.ID)
	v.metrics.RecordVaultOperation("deactivate", err)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Credential{}, err
		}
		return model.Credential{}, fmt.Errorf("failed to deactivate credential: %w", err)
	}

	v.logger.Info("Vault: credential deactivated", "credential_id", updated.ID)

	return updated, nil
}

// Rotate replaces the stored secret of an active credential; quota state is kept.
func (v *Vault) Rotate(ctx context.Context, credential model.Credential, plaintext string) (model.Credential, error) {
	updated, err := v.rotate(ctx, credential, plaintext)
	v.metrics.RecordVaultOperation("rotate", err)
	return updated, err
}

func (v *Vault) rotate(ctx context.Context, credential model.Credential, plaintext string) (model.Credential, error) {
	if strings.TrimSpace(plaintext) == "" {
		return model.Credential{}, model.NewValidationError("api_key", "must not be empty")
	}
	if !credential.IsActive {
		return model.Credential{}, model.ErrInactiveCredential
	}

	ciphertext, err := v.cipher.Encrypt(plaintext)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to encrypt credential: %w", err)
	}

	updated, err := v.store.UpdateSecret(ctx, credential.ID, ciphertext, MaskKey(plaintext))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Credential{}, err
		}
		return model.Credential{}, fmt.Errorf("failed to rotate credential: %w", err)
	}

	v.logger.Info("Vault: credential rotated",
		"credential_id", updated.ID,
		"masked_key", updated.MaskedKey)

	return updated, nil
}

// ListDueForReset returns up to limit active credentials whose reset time has passed.
func (v *Vault) ListDueForReset(ctx context.Context, limit int) ([]model.Credential, error) {
	credentials, err := v.store.ListDueForReset(ctx, v.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials due for reset: %w", err)
	}
	return credentials, nil
}

// MaskKey builds the display form of a key: the first five and last four characters
// joined by "...". Keys too short to hide anything keep only their last two characters.
func MaskKey(plaintext string) string {
	runes := []rune(plaintext)
	if len(runes) < maskPrefixLen+maskSuffixLen+1 {
		if len(runes) > 2 {
			return "***" + string(runes[len(runes)-2:])
		}
		return "***"
	}
	return string(runes[:maskPrefixLen]) + "..." + string(runes[len(runes)-maskSuffixLen:])
}
