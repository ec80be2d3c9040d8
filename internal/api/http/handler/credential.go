package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// CredentialVault defines the credential operations exposed over HTTP.
type CredentialVault interface {
	Register(ctx context.Context, params model.RegisterCredentialParams) (model.Credential, error)
	FindActive(ctx context.Context, ownerID uuid.UUID, service model.Service) (model.Credential, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (model.Credential, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Credential, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Credential, error)
	ReportUsage(ctx context.Context, credential model.Credential, amount int64) (model.Credential, error)
	ResetQuota(ctx context.Context, credential model.Credential) (model.Credential, error)
	Deactivate(ctx context.Context, credential model.Credential) (model.Credential, error)
	Rotate(ctx context.Context, credential model.Credential, plaintext string) (model.Credential, error)
}

// Credential handles HTTP endpoints for stored API keys.
type Credential struct {
	vault          CredentialVault
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewCredential creates a new Credential handler.
func NewCredential(vault CredentialVault, contextManager model.ContextManager, logger *logger.Logger) *Credential {
	return &Credential{
		vault:          vault,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Create registers a new key for the caller.
func (h *Credential) Create(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	var req createCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	service, err := model.ParseService(req.Service)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	credential, err := h.vault.Register(c.Request.Context(), model.RegisterCredentialParams{
		OwnerID:      identity.ID,
		Service:      service,
		Name:         req.Name,
		PlaintextKey: req.APIKey,
		QuotaLimit:   req.QuotaLimit,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	h.logger.Info("Credential handler: credential registered",
		"identity_id", identity.ID,
		"credential_id", credential.ID,
		"service", credential.Service)
	c.JSON(http.StatusCreated, toCredentialResponse(credential))
}

// List returns every key of the caller.
func (h *Credential) List(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	credentials, err := h.vault.List(c.Request.Context(), identity.ID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	out := make([]credentialResponse, 0, len(credentials))
	for _, cred := range credentials {
		out = append(out, toCredentialResponse(cred))
	}
	c.JSON(http.StatusOK, gin.H{"credentials": out})
}

// Get returns one key of the caller with its quota status.
func (h *Credential) Get(c *gin.Context) {
	credential, ok := h.owned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toCredentialResponse(credential))
}

// Rotate replaces the secret of a key of the caller.
func (h *Credential) Rotate(c *gin.Context) {
	credential, ok := h.owned(c)
	if !ok {
		return
	}

	var req rotateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	rotated, err := h.vault.Rotate(c.Request.Context(), credential, req.APIKey)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	h.logger.Info("Credential handler: credential rotated", "credential_id", rotated.ID)
	c.JSON(http.StatusOK, toCredentialResponse(rotated))
}

// Deactivate turns off a key of the caller. The record is kept.
func (h *Credential) Deactivate(c *gin.Context) {
	credential, ok := h.owned(c)
	if !ok {
		return
	}

	deactivated, err := h.vault.Deactivate(c.Request.Context(), credential)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	h.logger.Info("Credential handler: credential deactivated", "credential_id", deactivated.ID)
	c.JSON(http.StatusOK, toCredentialResponse(deactivated))
}

// ResetQuota zeroes usage of any key. It is mounted behind the admin role.
func (h *Credential) ResetQuota(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	credential, err := h.vault.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	reset, err := h.vault.ResetQuota(c.Request.Context(), credential)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	h.logger.Info("Credential handler: quota reset by admin", "credential_id", reset.ID)
	c.JSON(http.StatusOK, toCredentialResponse(reset))
}

func (h *Credential) owned(c *gin.Context) (model.Credential, bool) {
	identity, ok := h.identity(c)
	if !ok {
		return model.Credential{}, false
	}
	id, ok := parseID(c)
	if !ok {
		return model.Credential{}, false
	}

	credential, err := h.vault.Get(c.Request.Context(), identity.ID, id)
	if err != nil {
		handleError(c, h.logger, err)
		return model.Credential{}, false
	}
	return credential, true
}

func (h *Credential) identity(c *gin.Context) (model.AuthenticatedIdentity, bool) {
	return identityFromContext(c, h.contextManager)
}

func identityFromContext(c *gin.Context, cm model.ContextManager) (model.AuthenticatedIdentity, bool) {
	identity, ok := cm.GetIdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return model.AuthenticatedIdentity{}, false
	}
	return identity, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, nil, model.NewValidationError("id", "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
