package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/superapp-gateway/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

// CredentialRepository keeps credentials in a map guarded by a single mutex, so every
// mutation is atomic with respect to concurrent readers and writers.
type CredentialRepository struct {
	mu          sync.RWMutex
	credentials map[uuid.UUID]model.Credential
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{
		credentials: make(map[uuid.UUID]model.Credential),
	}
}

func (r *CredentialRepository) Create(_ context.Context, c model.Credential) (model.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if _, ok := r.credentials[c.ID]; ok {
		return model.Credential{}, model.ErrConflict
	}
	r.credentials[c.ID] = c
	return c, nil
}

func (r *CredentialRepository) GetByID(_ context.Context, id uuid.UUID) (model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.credentials[id]
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	return c, nil
}

func (r *CredentialRepository) FindActive(_ context.Context, ownerID uuid.UUID, service model.Service) (model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found model.Credential
		ok    bool
	)
	for _, c := range r.credentials {
		if c.OwnerID != ownerID || c.Service != service || !c.IsActive {
			continue
		}
		if !ok || newer(c, found) {
			found, ok = c, true
		}
	}
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	return found, nil
}

func (r *CredentialRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Credential
	for _, c := range r.credentials {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return newer(out[i], out[j]) })
	return out, nil
}

func (r *CredentialRepository) ListDueForReset(_ context.Context, now time.Time, limit int) ([]model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Credential
	for _, c := range r.credentials {
		if c.IsActive && c.QuotaDue(now) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuotaResetAt.Before(out[j].QuotaResetAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// IncrementUsage saturates at math.MaxInt64 instead of wrapping.
func (r *CredentialRepository) IncrementUsage(_ context.Context, id uuid.UUID, amount int64) (model.Credential, error) {
	return r.update(id, func(c *model.Credential) error {
		if c.QuotaUsed > math.MaxInt64-amount {
			c.QuotaUsed = math.MaxInt64
			return nil
		}
		c.QuotaUsed += amount
		return nil
	})
}

func (r *CredentialRepository) ResetQuota(_ context.Context, id uuid.UUID, resetAt time.Time) (model.Credential, error) {
	return r.update(id, func(c *model.Credential) error {
		c.QuotaUsed = 0
		c.QuotaResetAt = resetAt
		return nil
	})
}

// ResetDueQuota resets only while the stored reset time is still at or before now.
// A record reset in the meantime is reported as model.ErrNotFound and left untouched.
func (r *CredentialRepository) ResetDueQuota(_ context.Context, id uuid.UUID, now, resetAt time.Time) (model.Credential, error) {
	return r.update(id, func(c *model.Credential) error {
		if !c.IsActive || !c.QuotaDue(now) {
			return model.ErrNotFound
		}
		c.QuotaUsed = 0
		c.QuotaResetAt = resetAt
		return nil
	})
}

func (r *CredentialRepository) UpdateSecret(_ context.Context, id uuid.UUID, ciphertext, maskedKey string) (model.Credential, error) {
	return r.update(id, func(c *model.Credential) error {
		c.Ciphertext = ciphertext
		c.MaskedKey = maskedKey
		return nil
	})
}

func (r *CredentialRepository) Deactivate(_ context.Context, id uuid.UUID) (model.Credential, error) {
	return r.update(id, func(c *model.Credential) error {
		c.IsActive = false
		return nil
	})
}

func (r *CredentialRepository) update(id uuid.UUID, mutate func(*model.Credential) error) (model.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.credentials[id]
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	if err := mutate(&c); err != nil {
		return model.Credential{}, err
	}
	c.UpdatedAt = time.Now()
	r.credentials[id] = c
	return c, nil
}

func newer(a, b model.Credential) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}
