package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/org"
)

// MySQLOrgRepository handles org persistence for MySQL.
type MySQLOrgRepository struct {
	db *sql.DB
}

// NewMySQLOrgRepository creates a new MySQLOrgRepository.
func NewMySQLOrgRepository(db *sql.DB) *MySQLOrgRepository {
	return &MySQLOrgRepository{db: db}
}

func (r *MySQLOrgRepository) Create(ctx context.Context, o *org.Org) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx, `INSERT INTO orgs (id, name, created_at) VALUES (?, ?, NOW())`, o.ID.String(), o.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create org")
	}
	return nil
}

func (r *MySQLOrgRepository) GetByID(ctx context.Context, id uuid.UUID) (*org.Org, error) {
	var o org.Org
	var rawID string
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, name, created_at FROM orgs WHERE id = ?`, id.String()).
		Scan(&rawID, &o.Name, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, org.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get org by id")
	}
	if o.ID, err = uuid.Parse(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse org id")
	}
	return &o, nil
}

func (r *MySQLOrgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM orgs WHERE id = ?`, id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete org")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return org.ErrNotFound
	}
	return nil
}
