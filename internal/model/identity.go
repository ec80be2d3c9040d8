package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the coarse authorization role of an identity.
type Role string

const (
	// RoleStandard is the default role of registered accounts.
	RoleStandard Role = "standard"
	// RoleAdmin may perform administrative credential operations.
	RoleAdmin Role = "admin"
)

// ParseRole converts a stored role name to a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleStandard, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// RoleSet is the allow-set checked by the access gate. An empty set allows every role.
type RoleSet map[Role]struct{}

// Roles builds a RoleSet from the given roles.
func Roles(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Allows reports whether role is a member of the set.
func (s RoleSet) Allows(role Role) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[role]
	return ok
}

// IdentityStore defines persistence operations for identities.
type IdentityStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Identity, error)
	GetByEmail(ctx context.Context, email string) (Identity, error)
	Create(ctx context.Context, identity Identity) (Identity, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// Identity represents a stored account.
type Identity struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash []byte
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterIdentityParams contains input for account registration.
type RegisterIdentityParams struct {
	Email    string
	Password string
	Name     string
}

// AuthenticatedIdentity is attached to admitted requests.
type AuthenticatedIdentity struct {
	ID   uuid.UUID
	Role Role
}
