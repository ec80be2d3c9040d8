package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultQuotaLimit is applied when a credential is registered without an explicit limit.
const DefaultQuotaLimit int64 = 100000

// Service tags the third-party provider a credential belongs to.
type Service string

const (
	ServiceGoogle   Service = "google"
	ServiceOpenAI   Service = "openai"
	ServiceLinkedIn Service = "linkedin"
	ServiceGitHub   Service = "github"
	ServiceOther    Service = "other"
)

// ParseService converts user input to a Service.
func ParseService(s string) (Service, error) {
	switch svc := Service(s); svc {
	case ServiceGoogle, ServiceOpenAI, ServiceLinkedIn, ServiceGitHub, ServiceOther:
		return svc, nil
	default:
		return "", NewValidationError("service", fmt.Sprintf("unsupported service %q", s))
	}
}

// CredentialStore defines persistence operations for credentials.
// IncrementUsage, ResetQuota and ResetDueQuota must be atomic in the backing store.
// IncrementUsage saturates at math.MaxInt64. ResetDueQuota resets only an active record
// still due at now and returns ErrNotFound otherwise.
type CredentialStore interface {
	Create(ctx context.Context, credential Credential) (Credential, error)
	GetByID(ctx context.Context, id uuid.UUID) (Credential, error)
	FindActive(ctx context.Context, ownerID uuid.UUID, service Service) (Credential, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Credential, error)
	ListDueForReset(ctx context.Context, now time.Time, limit int) ([]Credential, error)
	IncrementUsage(ctx context.Context, id uuid.UUID, amount int64) (Credential, error)
	ResetQuota(ctx context.Context, id uuid.UUID, resetAt time.Time) (Credential, error)
	ResetDueQuota(ctx context.Context, id uuid.UUID, now, resetAt time.Time) (Credential, error)
	UpdateSecret(ctx context.Context, id uuid.UUID, ciphertext, maskedKey string) (Credential, error)
	Deactivate(ctx context.Context, id uuid.UUID) (Credential, error)
}

// SecretCipher encrypts secrets into self-contained blobs.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(blob string) (string, error)
}

// Credential is a stored, encrypted third-party API key with quota metadata.
type Credential struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Service      Service
	Name         string
	Ciphertext   string
	MaskedKey    string
	QuotaLimit   int64
	QuotaUsed    int64
	QuotaResetAt time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterCredentialParams contains input for registering a credential.
// A nil QuotaLimit selects the vault's default limit.
type RegisterCredentialParams struct {
	OwnerID      uuid.UUID
	Service      Service
	Name         string
	PlaintextKey string
	QuotaLimit   *int64
}

// QuotaRemaining returns the unused part of the quota, never below zero.
func (c Credential) QuotaRemaining() int64 {
	return max(0, c.QuotaLimit-c.QuotaUsed)
}

// QuotaPercentageUsed returns used quota in percent, capped at 100.
func (c Credential) QuotaPercentageUsed() float64 {
	if c.QuotaLimit <= 0 {
		return 100
	}
	return min(100, float64(c.QuotaUsed)/float64(c.QuotaLimit)*100)
}

// QuotaDue reports whether the reset time has passed.
func (c Credential) QuotaDue(now time.Time) bool {
	return !now.Before(c.QuotaResetAt)
}

// NextQuotaReset returns the reset time one calendar month after from.
func NextQuotaReset(from time.Time) time.Time {
	return from.AddDate(0, 1, 0)
}
