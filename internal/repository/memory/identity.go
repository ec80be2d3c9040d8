// Package memory provides process-local stores used in development, tests and
// single-instance deployments without a database.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/superapp-gateway/internal/model"
)

var _ model.IdentityStore = (*IdentityRepository)(nil)

type IdentityRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.Identity
	byEmail map[string]uuid.UUID
}

func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{
		byID:    make(map[uuid.UUID]model.Identity),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *IdentityRepository) GetByID(_ context.Context, id uuid.UUID) (model.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, ok := r.byID[id]
	if !ok {
		return model.Identity{}, model.ErrNotFound
	}
	return identity, nil
}

func (r *IdentityRepository) GetByEmail(_ context.Context, email string) (model.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return model.Identity{}, model.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *IdentityRepository) Create(_ context.Context, identity model.Identity) (model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(identity.Email)
	if _, ok := r.byEmail[key]; ok {
		return model.Identity{}, model.ErrConflict
	}
	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}
	if _, ok := r.byID[identity.ID]; ok {
		return model.Identity{}, model.ErrConflict
	}

	r.byID[identity.ID] = identity
	r.byEmail[key] = identity.ID
	return identity, nil
}

func (r *IdentityRepository) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	identity.IsActive = active
	identity.UpdatedAt = time.Now()
	r.byID[id] = identity
	return nil
}
