package model

import (
	"context"

	"github.com/google/uuid"
)

// CompletionOptions tunes a single model invocation.
type CompletionOptions struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int64
}

// Usage is the token accounting returned by a model provider.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
	LatencyMs        int64
}

// Completion is the result of a model invocation.
type Completion struct {
	Text         string
	Model        string
	FinishReason string
	Usage        Usage
}

// ModelClient invokes a remote generative model with an already decrypted key.
type ModelClient interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (Completion, error)
}

// ModelClientFactory builds a ModelClient for a service and decrypted key.
type ModelClientFactory interface {
	New(service Service, apiKey string) (ModelClient, error)
}

// GenerateContentParams contains input for credential-backed content generation.
// Nil pointers select the generator defaults.
type GenerateContentParams struct {
	OwnerID     uuid.UUID
	Service     Service
	Prompt      string
	Temperature *float64
	MaxTokens   *int64
}

// GeneratedContent is returned to the caller after usage has been reported.
type GeneratedContent struct {
	Completion
	CredentialID   uuid.UUID
	QuotaRemaining int64
}
