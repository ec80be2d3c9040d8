package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/superapp-gateway/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

// CredentialRepository persists credentials. Quota mutations are single UPDATE ... RETURNING
// statements so concurrent usage reports never lose increments.
type CredentialRepository struct {
	db DB
}

func NewCredentialRepository(db DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

const credentialColumns = `id, owner_id, service, name, ciphertext, masked_key,
	quota_limit, quota_used, quota_reset_at, is_active, created_at, updated_at`

func scanCredential(row pgx.Row) (model.Credential, error) {
	var (
		c       model.Credential
		service string
	)
	err := row.Scan(
		&c.ID, &c.OwnerID, &service, &c.Name, &c.Ciphertext, &c.MaskedKey,
		&c.QuotaLimit, &c.QuotaUsed, &c.QuotaResetAt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return model.Credential{}, err
	}
	c.Service = model.Service(service)
	return c, nil
}

func (r *CredentialRepository) one(ctx context.Context, op, query string, args ...any) (model.Credential, error) {
	c, err := scanCredential(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to %s: %w", op, err)
	}
	return c, nil
}

func (r *CredentialRepository) many(ctx context.Context, op, query string, args ...any) ([]model.Credential, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	var out []model.Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	return out, nil
}

func (r *CredentialRepository) Create(ctx context.Context, c model.Credential) (model.Credential, error) {
	query := `INSERT INTO credentials (` + credentialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + credentialColumns

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	return r.one(ctx, "create credential", query,
		c.ID, c.OwnerID, string(c.Service), c.Name, c.Ciphertext, c.MaskedKey,
		c.QuotaLimit, c.QuotaUsed, c.QuotaResetAt, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
}

func (r *CredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE id = $1`
	return r.one(ctx, "get credential by id", query, id)
}

// FindActive returns the most recently created active credential of the owner for service.
func (r *CredentialRepository) FindActive(ctx context.Context, ownerID uuid.UUID, service model.Service) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials
		WHERE owner_id = $1 AND service = $2 AND is_active
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	return r.one(ctx, "find active credential", query, ownerID, string(service))
}

func (r *CredentialRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.many(ctx, "list credentials", query, ownerID)
}

func (r *CredentialRepository) ListDueForReset(ctx context.Context, now time.Time, limit int) ([]model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials
		WHERE is_active AND quota_reset_at <= $1
		ORDER BY quota_reset_at
		LIMIT $2`
	return r.many(ctx, "list credentials due for reset", query, now, limit)
}

func (r *CredentialRepository) IncrementUsage(ctx context.Context, id uuid.UUID, amount int64) (model.Credential, error) {
	query := `UPDATE credentials SET
			quota_used = CASE
				WHEN quota_used > 9223372036854775807 - $2::bigint THEN 9223372036854775807
				ELSE quota_used + $2::bigint
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + credentialColumns
	return r.one(ctx, "increment credential usage", query, id, amount)
}

func (r *CredentialRepository) ResetQuota(ctx context.Context, id uuid.UUID, resetAt time.Time) (model.Credential, error) {
	query := `UPDATE credentials SET quota_used = 0, quota_reset_at = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + credentialColumns
	return r.one(ctx, "reset credential quota", query, id, resetAt)
}

// ResetDueQuota is a compare-and-swap on quota_reset_at: a record reset since it was
// listed no longer matches and yields model.ErrNotFound.
func (r *CredentialRepository) ResetDueQuota(ctx context.Context, id uuid.UUID, now, resetAt time.Time) (model.Credential, error) {
	query := `UPDATE credentials SET quota_used = 0, quota_reset_at = $2, updated_at = NOW()
		WHERE id = $1 AND is_active AND quota_reset_at <= $3
		RETURNING ` + credentialColumns
	return r.one(ctx, "reset due credential quota", query, id, resetAt, now)
}

func (r *CredentialRepository) UpdateSecret(ctx context.Context, id uuid.UUID, ciphertext, maskedKey string) (model.Credential, error) {
	query := `UPDATE credentials SET ciphertext = $2, masked_key = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + credentialColumns
	return r.one(ctx, "update credential secret", query, id, ciphertext, maskedKey)
}

func (r *CredentialRepository) Deactivate(ctx context.Context, id uuid.UUID) (model.Credential, error) {
	query := `UPDATE credentials SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + credentialColumns
	return r.one(ctx, "deactivate credential", query, id)
}
