package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"secretstore/internal/common"
	"secretstore/internal/models"
)

const secretColumns = `id, owner_id, value, type, expires_at, created_at, updated_at`

// PostgresSecretRepository implements secret persistence against PostgreSQL.
type PostgresSecretRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSecretRepository creates a PostgresSecretRepository with the
// given database connection.
func NewPostgresSecretRepository(db *sql.DB) *PostgresSecretRepository {
	return &PostgresSecretRepository{DB: db}
}

func scanSecret(row interface{ Scan(...any) error }) (*models.Secret, error) {
	var sec models.Secret
	err := row.Scan(&sec.ID, &sec.OwnerID, &sec.Value, &sec.Type, &sec.ExpiresAt, &sec.CreatedAt, &sec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

func (r *PostgresSecretRepository) querySecrets(ctx context.Context, query string, args ...any) ([]models.Secret, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var secrets []models.Secret
	for rows.Next() {
		sec, err := scanSecret(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		secrets = append(secrets, *sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return secrets, nil
}

// Create inserts a new secret record.
func (r *PostgresSecretRepository) Create(ctx context.Context, sec *models.Secret) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO secrets (id, owner_id, value, type, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sec.ID, sec.OwnerID, sec.Value, sec.Type, sec.ExpiresAt, sec.CreatedAt, sec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create secret: %w", err)
	}
	return nil
}

// GetByID fetches a single secret by id.
func (r *PostgresSecretRepository) GetByID(ctx context.Context, id string) (*models.Secret, error) {
	sec, err := scanSecret(r.DB.QueryRowContext(ctx, `
		SELECT `+secretColumns+` FROM secrets WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("GetByID secret: %w", err)
	}
	return sec, nil
}

// ListAll returns every secret ordered by id.
func (r *PostgresSecretRepository) ListAll(ctx context.Context) ([]models.Secret, error) {
	secrets, err := r.querySecrets(ctx, `
		SELECT `+secretColumns+` FROM secrets ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("ListAll secrets: %w", err)
	}
	return secrets, nil
}

// ListByOwner returns the secrets of one owner ordered by id.
func (r *PostgresSecretRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Secret, error) {
	secrets, err := r.querySecrets(ctx, `
		SELECT `+secretColumns+` FROM secrets WHERE owner_id = $1 ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListByOwner secrets: %w", err)
	}
	return secrets, nil
}

// SearchAll returns secrets whose type or value contains pattern,
// case-insensitive, ordered by id.
func (r *PostgresSecretRepository) SearchAll(ctx context.Context, pattern string) ([]models.Secret, error) {
	like := "%" + pattern + "%"
	secrets, err := r.querySecrets(ctx, `
		SELECT `+secretColumns+` FROM secrets
		WHERE type ILIKE $1 OR value ILIKE $1 ORDER BY id
	`, like)
	if err != nil {
		return nil, fmt.Errorf("SearchAll secrets: %w", err)
	}
	return secrets, nil
}

// SearchByOwner is SearchAll restricted to one owner.
func (r *PostgresSecretRepository) SearchByOwner(ctx context.Context, ownerID, pattern string) ([]models.Secret, error) {
	like := "%" + pattern + "%"
	secrets, err := r.querySecrets(ctx, `
		SELECT `+secretColumns+` FROM secrets
		WHERE owner_id = $1 AND (type ILIKE $2 OR value ILIKE $2) ORDER BY id
	`, ownerID, like)
	if err != nil {
		return nil, fmt.Errorf("SearchByOwner secrets: %w", err)
	}
	return secrets, nil
}

// Update rewrites value, type and updated_at of an existing secret.
// A missing id maps to common.ErrNotFound.
func (r *PostgresSecretRepository) Update(ctx context.Context, sec *models.Secret) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE secrets SET value = $1, type = $2, updated_at = $3 WHERE id = $4
	`, sec.Value, sec.Type, sec.UpdatedAt, sec.ID)
	if err != nil {
		return fmt.Errorf("Update secret: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update secret rows: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes a secret by id. Deleting an already-deleted id maps to
// common.ErrNotFound so a double delete is reported, not fatal.
func (r *PostgresSecretRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM secrets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete secret: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete secret rows: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
