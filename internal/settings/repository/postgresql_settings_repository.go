// Package repository provides data persistence implementations for setting entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/settings"
)

// PostgreSQLSettingsRepository handles setting persistence for PostgreSQL.
type PostgreSQLSettingsRepository struct {
	db *sql.DB
}

// NewPostgreSQLSettingsRepository creates a new PostgreSQLSettingsRepository.
func NewPostgreSQLSettingsRepository(db *sql.DB) *PostgreSQLSettingsRepository {
	return &PostgreSQLSettingsRepository{db: db}
}

func (r *PostgreSQLSettingsRepository) Upsert(ctx context.Context, s *settings.Setting) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx, `
		INSERT INTO settings (org_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (org_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		s.OrgID, s.Key, s.Value)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert setting")
	}
	return nil
}

func (r *PostgreSQLSettingsRepository) Get(ctx context.Context, orgID, key string) (*settings.Setting, error) {
	var s settings.Setting
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx,
		`SELECT org_id, key, value, updated_at FROM settings WHERE org_id = $1 AND key = $2`, orgID, key).
		Scan(&s.OrgID, &s.Key, &s.Value, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, settings.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get setting")
	}
	return &s, nil
}

func (r *PostgreSQLSettingsRepository) ListByOrg(ctx context.Context, orgID string) ([]*settings.Setting, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx,
		`SELECT org_id, key, value, updated_at FROM settings WHERE org_id = $1 ORDER BY key`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list settings")
	}
	defer rows.Close()

	var out []*settings.Setting
	for rows.Next() {
		var s settings.Setting
		if err := rows.Scan(&s.OrgID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan setting row")
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgreSQLSettingsRepository) Delete(ctx context.Context, orgID, key string) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM settings WHERE org_id = $1 AND key = $2`, orgID, key)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete setting")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return settings.ErrNotFound
	}
	return nil
}
