package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/metrics"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// Generation defaults.
const (
	DefaultTemperature = 0.7
	DefaultTopP        = 0.95
	DefaultMaxTokens   = 1024
)

// ContentGenerator runs a prompt against the caller's own model credential and books
// the consumed tokens against that credential's quota.
type ContentGenerator struct {
	vault   *Vault
	models  model.ModelClientFactory
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewContentGenerator(vault *Vault, models model.ModelClientFactory, logger *logger.Logger, m *metrics.Metrics) *ContentGenerator {
	return &ContentGenerator{
		vault:   vault,
		models:  models,
		logger:  logger,
		metrics: m,
	}
}

func (g *ContentGenerator) Generate(ctx context.Context, params model.GenerateContentParams) (model.GeneratedContent, error) {
	if strings.TrimSpace(params.Prompt) == "" {
		return model.GeneratedContent{}, model.NewValidationError("prompt", "must not be empty")
	}
	service := params.Service
	if service == "" {
		service = model.ServiceGoogle
	}

	opts := model.CompletionOptions{
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		MaxTokens:   DefaultMaxTokens,
	}
	if params.Temperature != nil {
		if *params.Temperature < 0 || *params.Temperature > 2 {
			return model.GeneratedContent{}, model.NewValidationError("temperature", "must be between 0 and 2")
		}
		opts.Temperature = *params.Temperature
	}
	if params.MaxTokens != nil {
		if *params.MaxTokens <= 0 {
			return model.GeneratedContent{}, model.NewValidationError("max_tokens", "must be positive")
		}
		opts.MaxTokens = *params.MaxTokens
	}

	credential, err := g.vault.FindActive(ctx, params.OwnerID, service)
	if err != nil {
		return model.GeneratedContent{}, err
	}

	remaining := credential.QuotaRemaining()
	if remaining <= 0 || opts.MaxTokens > remaining {
		g.logger.Info("Content service: quota exhausted",
			"credential_id", credential.ID,
			"quota_remaining", remaining,
			"max_tokens", opts.MaxTokens)
		return model.GeneratedContent{}, fmt.Errorf("%w: %d tokens remaining", model.ErrQuotaExceeded, remaining)
	}

	apiKey, err := g.vault.DecryptForUse(credential)
	if err != nil {
		return model.GeneratedContent{}, err
	}

	client, err := g.models.New(service, apiKey)
	if err != nil {
		return model.GeneratedContent{}, fmt.Errorf("failed to build model client: %w", err)
	}

	started := time.Now()
	completion, err := client.Complete(ctx, params.Prompt, opts)
	g.metrics.ObserveModelCall(string(service), time.Since(started))
	if err != nil {
		g.logger.Error("Content service: model call failed",
			"credential_id", credential.ID,
			"service", service,
			"error", err.Error())
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return model.GeneratedContent{}, err
		}
		return model.GeneratedContent{}, fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}

	used := completion.Usage.TotalTokens
	if used <= 0 {
		used = 1
	}

	updated, err := g.vault.ReportUsage(ctx, credential, used)
	if err != nil {
		return model.GeneratedContent{}, fmt.Errorf("failed to report usage: %w", err)
	}

	return model.GeneratedContent{
		Completion:     completion,
		CredentialID:   updated.ID,
		QuotaRemaining: updated.QuotaRemaining(),
	}, nil
}
