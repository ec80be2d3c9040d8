// Package worker contains background jobs started by the gateway process.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// QuotaVault is the part of the credential vault the sweeper drives.
type QuotaVault interface {
	ListDueForReset(ctx context.Context, limit int) ([]model.Credential, error)
	ResetDueQuota(ctx context.Context, credential model.Credential) (model.Credential, error)
}

// RevocationPurger removes denylist entries of tokens that have expired anyway.
type RevocationPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// QuotaSweeper periodically resets the quota of credentials whose reset time has passed.
type QuotaSweeper struct {
	vault    QuotaVault
	purger   RevocationPurger
	interval time.Duration
	batch    int
	logger   *logger.Logger
}

type SweeperOption func(*QuotaSweeper)

// WithRevocationPurger makes every sweep also purge expired denylist entries.
func WithRevocationPurger(p RevocationPurger) SweeperOption {
	return func(s *QuotaSweeper) {
		s.purger = p
	}
}

func NewQuotaSweeper(vault QuotaVault, interval time.Duration, batch int, logger *logger.Logger, opts ...SweeperOption) *QuotaSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if batch <= 0 {
		batch = 500
	}
	s := &QuotaSweeper{
		vault:    vault,
		interval: interval,
		batch:    batch,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run sweeps once immediately and then every interval until ctx is cancelled.
func (s *QuotaSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Quota sweeper: started", "interval", s.interval, "batch", s.batch)

	s.tick(ctx)
	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			s.logger.Info("Quota sweeper: stopped")
			return
		}
	}
}

func (s *QuotaSweeper) tick(ctx context.Context) {
	reset, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("Quota sweeper: sweep failed", "error", err.Error(), "reset", reset)
	} else if reset > 0 {
		s.logger.Info("Quota sweeper: quotas reset", "count", reset)
	}

	if s.purger == nil {
		return
	}
	purged, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("Quota sweeper: failed to purge revoked tokens", "error", err.Error())
		return
	}
	if purged > 0 {
		s.logger.Debug("Quota sweeper: purged revoked tokens", "count", purged)
	}
}

// Sweep resets every due credential, batch by batch, and returns how many were reset.
// A credential reset or deactivated after it was listed is skipped. One that fails to
// reset is logged and retried on the next sweep.
func (s *QuotaSweeper) Sweep(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		due, err := s.vault.ListDueForReset(ctx, s.batch)
		if err != nil {
			return total, err
		}

		reset, skipped := 0, 0
		for _, credential := range due {
			if _, err := s.vault.ResetDueQuota(ctx, credential); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					s.logger.Debug("Quota sweeper: credential no longer due", "credential_id", credential.ID)
					skipped++
					continue
				}
				s.logger.Error("Quota sweeper: failed to reset quota",
					"credential_id", credential.ID,
					"error", err.Error())
				continue
			}
			reset++
		}
		total += reset

		if len(due) < s.batch || reset+skipped == 0 {
			return total, nil
		}
	}
}
