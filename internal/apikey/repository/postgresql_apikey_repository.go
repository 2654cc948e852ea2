// Package repository provides data persistence implementations for API key entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/apikey"
	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// PostgreSQLAPIKeyRepository handles API key persistence for PostgreSQL.
type PostgreSQLAPIKeyRepository struct {
	db *sql.DB
}

// NewPostgreSQLAPIKeyRepository creates a new PostgreSQLAPIKeyRepository.
func NewPostgreSQLAPIKeyRepository(db *sql.DB) *PostgreSQLAPIKeyRepository {
	return &PostgreSQLAPIKeyRepository{db: db}
}

func (r *PostgreSQLAPIKeyRepository) Create(ctx context.Context, k *apikey.APIKey) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO api_keys (id, org_id, name, key_hash, expires_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err := querier.ExecContext(ctx, query, k.ID, k.OrgID, k.Name, k.KeyHash, k.ExpiresAt)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.ErrAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create api key")
	}
	return nil
}

func (r *PostgreSQLAPIKeyRepository) GetByHash(ctx context.Context, keyHash string) (*apikey.APIKey, error) {
	var k apikey.APIKey
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, org_id, name, key_hash, expires_at, created_at FROM api_keys WHERE key_hash = $1`
	err := querier.QueryRowContext(ctx, query, keyHash).Scan(&k.ID, &k.OrgID, &k.Name, &k.KeyHash, &k.ExpiresAt, &k.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apikey.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get api key by hash")
	}
	return &k, nil
}

func (r *PostgreSQLAPIKeyRepository) ListByOrg(ctx context.Context, orgID string) ([]*apikey.APIKey, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, org_id, name, key_hash, expires_at, created_at FROM api_keys WHERE org_id = $1 ORDER BY created_at`
	rows, err := querier.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api keys")
	}
	defer rows.Close()

	var keys []*apikey.APIKey
	for rows.Next() {
		var k apikey.APIKey
		if err := rows.Scan(&k.ID, &k.OrgID, &k.Name, &k.KeyHash, &k.ExpiresAt, &k.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key")
		}
		keys = append(keys, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api keys")
	}
	return keys, nil
}

func (r *PostgreSQLAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete api key")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return apikey.ErrNotFound
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
