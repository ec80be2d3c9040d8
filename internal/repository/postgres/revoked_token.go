package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/superapp-gateway/internal/model"
)

var _ model.Denylist = (*RevokedTokenRepository)(nil)

// RevokedTokenRepository is a denylist stored in the revoked_tokens table.
type RevokedTokenRepository struct {
	db DB
}

func NewRevokedTokenRepository(db DB) *RevokedTokenRepository {
	return &RevokedTokenRepository{db: db}
}

func (r *RevokedTokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	const query = `
        INSERT INTO revoked_tokens (jti, expires_at, revoked_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (jti) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, query, jti, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1 AND expires_at > NOW())`

	var revoked bool
	if err := r.db.QueryRow(ctx, query, jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}

// PurgeExpired deletes entries of tokens that expired anyway.
func (r *RevokedTokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM revoked_tokens WHERE expires_at <= NOW()`

	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
