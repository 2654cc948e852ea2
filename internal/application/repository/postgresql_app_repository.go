// Package repository provides data persistence implementations for app entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/application"
	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// PostgreSQLAppRepository handles app persistence for PostgreSQL.
type PostgreSQLAppRepository struct {
	db *sql.DB
}

// NewPostgreSQLAppRepository creates a new PostgreSQLAppRepository.
func NewPostgreSQLAppRepository(db *sql.DB) *PostgreSQLAppRepository {
	return &PostgreSQLAppRepository{db: db}
}

func (r *PostgreSQLAppRepository) Create(ctx context.Context, a *application.App) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx,
		`INSERT INTO apps (id, org_id, name, created_at) VALUES ($1, $2, $3, NOW())`, a.ID, a.OrgID, a.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create app")
	}
	return nil
}

func (r *PostgreSQLAppRepository) GetByID(ctx context.Context, id uuid.UUID) (*application.App, error) {
	var a application.App
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, org_id, name, created_at FROM apps WHERE id = $1`, id).
		Scan(&a.ID, &a.OrgID, &a.Name, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get app by id")
	}
	return &a, nil
}

func (r *PostgreSQLAppRepository) ListByOrg(ctx context.Context, orgID string) ([]*application.App, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `SELECT id, org_id, name, created_at FROM apps WHERE org_id = $1 ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list apps")
	}
	defer rows.Close()

	var out []*application.App
	for rows.Next() {
		var a application.App
		if err := rows.Scan(&a.ID, &a.OrgID, &a.Name, &a.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan app row")
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *PostgreSQLAppRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM apps WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete app")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return application.ErrNotFound
	}
	return nil
}
