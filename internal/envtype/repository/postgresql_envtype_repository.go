// Package repository provides data persistence implementations for env type entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/envtype"
)

// PostgreSQLEnvTypeRepository handles env type persistence for PostgreSQL.
type PostgreSQLEnvTypeRepository struct {
	db *sql.DB
}

// NewPostgreSQLEnvTypeRepository creates a new PostgreSQLEnvTypeRepository.
func NewPostgreSQLEnvTypeRepository(db *sql.DB) *PostgreSQLEnvTypeRepository {
	return &PostgreSQLEnvTypeRepository{db: db}
}

func (r *PostgreSQLEnvTypeRepository) Create(ctx context.Context, e *envtype.EnvType) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx,
		`INSERT INTO env_types (id, app_id, name, created_at) VALUES ($1, $2, $3, NOW())`, e.ID, e.AppID, e.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create env type")
	}
	return nil
}

func (r *PostgreSQLEnvTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*envtype.EnvType, error) {
	var e envtype.EnvType
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, app_id, name, created_at FROM env_types WHERE id = $1`, id).
		Scan(&e.ID, &e.AppID, &e.Name, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, envtype.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get env type by id")
	}
	return &e, nil
}

func (r *PostgreSQLEnvTypeRepository) ListByApp(ctx context.Context, appID string) ([]*envtype.EnvType, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `SELECT id, app_id, name, created_at FROM env_types WHERE app_id = $1 ORDER BY id`, appID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list env types")
	}
	defer rows.Close()

	var out []*envtype.EnvType
	for rows.Next() {
		var e envtype.EnvType
		if err := rows.Scan(&e.ID, &e.AppID, &e.Name, &e.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan env type row")
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *PostgreSQLEnvTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM env_types WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete env type")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return envtype.ErrNotFound
	}
	return nil
}
