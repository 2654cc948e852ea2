package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/apikey"
	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// MySQLAPIKeyRepository handles API key persistence for MySQL.
type MySQLAPIKeyRepository struct {
	db *sql.DB
}

// NewMySQLAPIKeyRepository creates a new MySQLAPIKeyRepository.
func NewMySQLAPIKeyRepository(db *sql.DB) *MySQLAPIKeyRepository {
	return &MySQLAPIKeyRepository{db: db}
}

func (r *MySQLAPIKeyRepository) Create(ctx context.Context, k *apikey.APIKey) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO api_keys (id, org_id, name, key_hash, expires_at, created_at)
			  VALUES (?, ?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query, k.ID.String(), k.OrgID, k.Name, k.KeyHash, k.ExpiresAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return apperrors.ErrAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create api key")
	}
	return nil
}

func (r *MySQLAPIKeyRepository) GetByHash(ctx context.Context, keyHash string) (*apikey.APIKey, error) {
	var k apikey.APIKey
	var rawID string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, org_id, name, key_hash, expires_at, created_at FROM api_keys WHERE key_hash = ?`
	err := querier.QueryRowContext(ctx, query, keyHash).Scan(&rawID, &k.OrgID, &k.Name, &k.KeyHash, &k.ExpiresAt, &k.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apikey.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get api key by hash")
	}
	if k.ID, err = uuid.Parse(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse api key id")
	}
	return &k, nil
}

func (r *MySQLAPIKeyRepository) ListByOrg(ctx context.Context, orgID string) ([]*apikey.APIKey, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, org_id, name, key_hash, expires_at, created_at FROM api_keys WHERE org_id = ? ORDER BY created_at`
	rows, err := querier.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api keys")
	}
	defer rows.Close()

	var keys []*apikey.APIKey
	for rows.Next() {
		var k apikey.APIKey
		var rawID string
		if err := rows.Scan(&rawID, &k.OrgID, &k.Name, &k.KeyHash, &k.ExpiresAt, &k.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key")
		}
		if k.ID, err = uuid.Parse(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse api key id")
		}
		keys = append(keys, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api keys")
	}
	return keys, nil
}

func (r *MySQLAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM api_keys WHERE id = ?`, id.String())
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
