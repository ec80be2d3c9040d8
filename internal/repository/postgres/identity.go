package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/superapp-gateway/internal/model"
)

const uniqueViolation = "23505"

var _ model.IdentityStore = (*IdentityRepository)(nil)

type IdentityRepository struct {
	db DB
}

func NewIdentityRepository(db DB) *IdentityRepository {
	return &IdentityRepository{
		db: db,
	}
}

const identityColumns = `id, email, name, password_hash, role, is_active, created_at, updated_at`

func scanIdentity(row pgx.Row) (model.Identity, error) {
	var (
		identity model.Identity
		role     string
	)
	err := row.Scan(
		&identity.ID, &identity.Email, &identity.Name, &identity.PasswordHash, &role,
		&identity.IsActive, &identity.CreatedAt, &identity.UpdatedAt,
	)
	if err != nil {
		return model.Identity{}, err
	}

	identity.Role, err = model.ParseRole(role)
	if err != nil {
		return model.Identity{}, err
	}

	return identity, nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM users WHERE id = $1`

	identity, err := scanIdentity(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Identity{}, model.ErrNotFound
		}
		return model.Identity{}, fmt.Errorf("failed to get identity by id: %w", err)
	}

	return identity, nil
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (model.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM users WHERE email = $1`

	identity, err := scanIdentity(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Identity{}, model.ErrNotFound
		}
		return model.Identity{}, fmt.Errorf("failed to get identity by email: %w", err)
	}

	return identity, nil
}

func (r *IdentityRepository) Create(ctx context.Context, identity model.Identity) (model.Identity, error) {
	query := `INSERT INTO users (id, email, name, password_hash, role, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + identityColumns

	saved, err := scanIdentity(r.db.QueryRow(ctx, query,
		identity.ID, identity.Email, identity.Name, identity.PasswordHash, string(identity.Role),
		identity.IsActive, identity.CreatedAt, identity.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Identity{}, model.ErrConflict
		}
		return model.Identity{}, fmt.Errorf("failed to create identity: %w", err)
	}

	return saved, nil
}

func (r *IdentityRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	const query = `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to update identity state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
