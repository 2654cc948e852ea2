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

// MySQLEnvTypeRepository handles env type persistence for MySQL.
type MySQLEnvTypeRepository struct {
	db *sql.DB
}

// NewMySQLEnvTypeRepository creates a new MySQLEnvTypeRepository.
func NewMySQLEnvTypeRepository(db *sql.DB) *MySQLEnvTypeRepository {
	return &MySQLEnvTypeRepository{db: db}
}

func (r *MySQLEnvTypeRepository) Create(ctx context.Context, e *envtype.EnvType) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx,
		`INSERT INTO env_types (id, app_id, name, created_at) VALUES (?, ?, ?, NOW())`, e.ID.String(), e.AppID, e.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create env type")
	}
	return nil
}

func (r *MySQLEnvTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*envtype.EnvType, error) {
	var e envtype.EnvType
	var rawID string
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, app_id, name, created_at FROM env_types WHERE id = ?`, id.String()).
		Scan(&rawID, &e.AppID, &e.Name, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, envtype.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get env type by id")
	}
	if e.ID, err = uuid.Parse(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse env type id")
	}
	return &e, nil
}

func (r *MySQLEnvTypeRepository) ListByApp(ctx context.Context, appID string) ([]*envtype.EnvType, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `SELECT id, app_id, name, created_at FROM env_types WHERE app_id = ? ORDER BY id`, appID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list env types")
	}
	defer rows.Close()

	var out []*envtype.EnvType
	for rows.Next() {
		var e envtype.EnvType
		var rawID string
		if err := rows.Scan(&rawID, &e.AppID, &e.Name, &e.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan env type row")
		}
		if e.ID, err = uuid.Parse(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse env type id")
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *MySQLEnvTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM env_types WHERE id = ?`, id.String())
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
