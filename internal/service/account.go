package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

const minPasswordLength = 8

// dummyHash is compared against when the email is unknown so that login takes the
// same time whether or not the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("superapp-gateway"), bcrypt.DefaultCost)

// Account implements registration, login, refresh and logout.
type Account struct {
	identities   model.IdentityStore
	tokenService *TokenService
	logger       *logger.Logger
	bcryptCost   int
}

func NewAccount(identities model.IdentityStore, tokenService *TokenService, logger *logger.Logger) *Account {
	return &Account{
		identities:   identities,
		tokenService: tokenService,
		logger:       logger,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

func (a *Account) Register(ctx context.Context, params model.RegisterIdentityParams) (model.Identity, error) {
	email, err := normalizeEmail(params.Email)
	if err != nil {
		return model.Identity{}, err
	}
	if len(params.Password) < minPasswordLength {
		return model.Identity{}, model.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.Identity{}, model.NewValidationError("name", "is required")
	}

	a.logger.Debug("Account service: registering identity", "email", email)

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.bcryptCost)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	identity, err := a.identities.Create(ctx, model.Identity{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleStandard,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			a.logger.Info("Account service: email already registered", "email", email)
			return model.Identity{}, err
		}
		return model.Identity{}, fmt.Errorf("failed to create identity: %w", err)
	}

	a.logger.Info("Account service: identity registered",
		"identity_id", identity.ID,
		"email", identity.Email)

	return identity, nil
}

// Login checks the password and issues a token pair. Unknown email, wrong password and
// deactivated accounts all fail with model.ErrInvalidCredentials.
func (a *Account) Login(ctx context.Context, email, password string) (model.Identity, model.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	identity, err := a.identities.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to get identity by email: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return model.Identity{}, model.TokenPair{}, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(identity.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Account service: password mismatch", "identity_id", identity.ID)
		return model.Identity{}, model.TokenPair{}, model.ErrInvalidCredentials
	}
	if !identity.IsActive {
		a.logger.Info("Account service: login to deactivated account", "identity_id", identity.ID)
		return model.Identity{}, model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := a.tokenService.IssuePair(identity.ID)
	if err != nil {
		return model.Identity{}, model.TokenPair{}, err
	}

	a.logger.Info("Account service: login succeeded", "identity_id", identity.ID)

	return identity, pair, nil
}

func (a *Account) Refresh(ctx context.Context, refreshToken string) (string, model.TokenClaims, error) {
	return a.tokenService.Refresh(ctx, refreshToken)
}

func (a *Account) Logout(ctx context.Context, refreshToken string) error {
	return a.tokenService.Revoke(ctx, refreshToken)
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", model.NewValidationError("email", "is not a valid address")
	}
	return strings.ToLower(addr.Address), nil
}
