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

// MySQLAppRepository handles app persistence for MySQL.
type MySQLAppRepository struct {
	db *sql.DB
}

// NewMySQLAppRepository creates a new MySQLAppRepository.
func NewMySQLAppRepository(db *sql.DB) *MySQLAppRepository {
	return &MySQLAppRepository{db: db}
}

func (r *MySQLAppRepository) Create(ctx context.Context, a *application.App) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx,
		`INSERT INTO apps (id, org_id, name, created_at) VALUES (?, ?, ?, NOW())`, a.ID.String(), a.OrgID, a.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create app")
	}
	return nil
}

func (r *MySQLAppRepository) GetByID(ctx context.Context, id uuid.UUID) (*application.App, error) {
	var a application.App
	var rawID string
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, org_id, name, created_at FROM apps WHERE id = ?`, id.String()).
		Scan(&rawID, &a.OrgID, &a.Name, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get app by id")
	}
	if a.ID, err = uuid.Parse(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse app id")
	}
	return &a, nil
}

func (r *MySQLAppRepository) ListByOrg(ctx context.Context, orgID string) ([]*application.App, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `SELECT id, org_id, name, created_at FROM apps WHERE org_id = ? ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list apps")
	}
	defer rows.Close()

	var out []*application.App
	for rows.Next() {
		var a application.App
		var rawID string
		if err := rows.Scan(&rawID, &a.OrgID, &a.Name, &a.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan app row")
		}
		if a.ID, err = uuid.Parse(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse app id")
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *MySQLAppRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM apps WHERE id = ?`, id.String())
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
