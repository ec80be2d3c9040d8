package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/superapp-gateway/internal/model"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type identityResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Identity         identityResponse `json:"identity"`
	AccessToken      string           `json:"access_token"`
	RefreshToken     string           `json:"refresh_token"`
	TokenType        string           `json:"token_type"`
	AccessExpiresAt  time.Time        `json:"access_expires_at"`
	RefreshExpiresAt time.Time        `json:"refresh_expires_at"`
}

type refreshResponse struct {
	AccessToken     string    `json:"access_token"`
	TokenType       string    `json:"token_type"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

type createCredentialRequest struct {
	Service    string `json:"service"`
	Name       string `json:"name"`
	APIKey     string `json:"api_key"`
	QuotaLimit *int64 `json:"quota_limit"`
}

type rotateCredentialRequest struct {
	APIKey string `json:"api_key"`
}

// credentialResponse never carries the ciphertext or the plaintext key.
type credentialResponse struct {
	ID                  uuid.UUID `json:"id"`
	Service             string    `json:"service"`
	Name                string    `json:"name"`
	MaskedKey           string    `json:"masked_key"`
	QuotaLimit          int64     `json:"quota_limit"`
	QuotaUsed           int64     `json:"quota_used"`
	QuotaRemaining      int64     `json:"quota_remaining"`
	QuotaPercentageUsed float64   `json:"quota_percentage_used"`
	QuotaResetAt        time.Time `json:"quota_reset_at"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type generateRequest struct {
	Service     string   `json:"service"`
	Prompt      string   `json:"prompt"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int64   `json:"max_tokens"`
}

type usageResponse struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
	LatencyMs        int64 `json:"latency_ms"`
}

type generateResponse struct {
	Text           string        `json:"text"`
	Model          string        `json:"model"`
	FinishReason   string        `json:"finish_reason"`
	Usage          usageResponse `json:"usage"`
	CredentialID   uuid.UUID     `json:"credential_id"`
	QuotaRemaining int64         `json:"quota_remaining"`
}

func toIdentityResponse(identity model.Identity) identityResponse {
	return identityResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      string(identity.Role),
		CreatedAt: identity.CreatedAt,
	}
}

func toCredentialResponse(c model.Credential) credentialResponse {
	return credentialResponse{
		ID:                  c.ID,
		Service:             string(c.Service),
		Name:                c.Name,
		MaskedKey:           c.MaskedKey,
		QuotaLimit:          c.QuotaLimit,
		QuotaUsed:           c.QuotaUsed,
		QuotaRemaining:      c.QuotaRemaining(),
		QuotaPercentageUsed: c.QuotaPercentageUsed(),
		QuotaResetAt:        c.QuotaResetAt,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func toGenerateResponse(g model.GeneratedContent) generateResponse {
	return generateResponse{
		Text:         g.Text,
		Model:        g.Model,
		FinishReason: g.FinishReason,
		Usage: usageResponse{
			PromptTokens:     g.Usage.PromptTokens,
			CompletionTokens: g.Usage.CompletionTokens,
			TotalTokens:      g.Usage.TotalTokens,
			LatencyMs:        g.Usage.LatencyMs,
		},
		CredentialID:   g.CredentialID,
		QuotaRemaining: g.QuotaRemaining,
	}
}
