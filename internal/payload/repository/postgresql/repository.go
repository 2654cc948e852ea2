// Package postgresql implements payload.Repository against PostgreSQL,
// parameterized by table name so env_vars and secrets share one
// implementation instead of being duplicated per entity.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/payload"
)

// Repository backs one payload table ("encrypted_env_vars" or
// "encrypted_secrets") via SQL identical except for the table name.
type Repository struct {
	db    *sql.DB
	table string
}

// NewEnvVarRepository builds a Repository for the env-var payload table.
func NewEnvVarRepository(db *sql.DB) *Repository {
	return &Repository{db: db, table: "encrypted_env_vars"}
}

// NewSecretRepository builds a Repository for the secret payload table.
func NewSecretRepository(db *sql.DB) *Repository {
	return &Repository{db: db, table: "encrypted_secrets"}
}

func (r *Repository) GetByKey(ctx context.Context, orgID, appID, envTypeID, key string) (*payload.Record, error) {
	querier := database.GetTx(ctx, r.db)
	query := fmt.Sprintf(`
		SELECT id, org_id, app_id, env_type_id, key, ciphertext, nonce, key_version, created_at, updated_at
		FROM %s
		WHERE org_id = $1 AND app_id = $2 AND env_type_id = $3 AND key = $4`, r.table)
	row := querier.QueryRowContext(ctx, query, orgID, appID, envTypeID, key)
	return scanRecord(row)
}

func (r *Repository) List(ctx context.Context, orgID, appID, envTypeID string) ([]*payload.Record, error) {
	querier := database.GetTx(ctx, r.db)
	query := fmt.Sprintf(`
		SELECT id, org_id, app_id, env_type_id, key, ciphertext, nonce, key_version, created_at, updated_at
		FROM %s
		WHERE org_id = $1 AND app_id = $2 AND env_type_id = $3
		ORDER BY key`, r.table)
	rows, err := querier.QueryContext(ctx, query, orgID, appID, envTypeID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list "+r.table)
	}
	defer rows.Close()

	var out []*payload.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, rec *payload.Record) error {
	querier := database.GetTx(ctx, r.db)
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	query := fmt.Sprintf(`
		INSERT INTO %s (org_id, app_id, env_type_id, key, ciphertext, nonce, key_version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`, r.table)
	row := querier.QueryRowContext(ctx, query,
		rec.OrgID, rec.AppID, rec.EnvTypeID, rec.Key, rec.Ciphertext, rec.Nonce, rec.KeyVersion, rec.CreatedAt, rec.UpdatedAt)
	if err := row.Scan(&rec.ID); err != nil {
		return apperrors.Wrap(err, "failed to create "+r.table+" row")
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, rec *payload.Record) error {
	querier := database.GetTx(ctx, r.db)
	query := fmt.Sprintf(`
		UPDATE %s
		SET ciphertext = $1, nonce = $2, key_version = $3, updated_at = $4
		WHERE id = $5`, r.table)
	result, err := querier.ExecContext(ctx, query, rec.Ciphertext, rec.Nonce, rec.KeyVersion, rec.UpdatedAt, rec.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update "+r.table+" row")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, orgID, appID, envTypeID, key string) error {
	querier := database.GetTx(ctx, r.db)
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE org_id = $1 AND app_id = $2 AND env_type_id = $3 AND key = $4`, r.table)
	result, err := querier.ExecContext(ctx, query, orgID, appID, envTypeID, key)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete "+r.table+" row")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*payload.Record, error) {
	var rec payload.Record
	err := row.Scan(&rec.ID, &rec.OrgID, &rec.AppID, &rec.EnvTypeID, &rec.Key,
		&rec.Ciphertext, &rec.Nonce, &rec.KeyVersion, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan row")
	}
	return &rec, nil
}
