// Package repository provides data persistence implementations for org entities.
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

// PostgreSQLOrgRepository handles org persistence for PostgreSQL.
type PostgreSQLOrgRepository struct {
	db *sql.DB
}

// NewPostgreSQLOrgRepository creates a new PostgreSQLOrgRepository.
func NewPostgreSQLOrgRepository(db *sql.DB) *PostgreSQLOrgRepository {
	return &PostgreSQLOrgRepository{db: db}
}

func (r *PostgreSQLOrgRepository) Create(ctx context.Context, o *org.Org) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx, `INSERT INTO orgs (id, name, created_at) VALUES ($1, $2, NOW())`, o.ID, o.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create org")
	}
	return nil
}

func (r *PostgreSQLOrgRepository) GetByID(ctx context.Context, id uuid.UUID) (*org.Org, error) {
	var o org.Org
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, name, created_at FROM orgs WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, org.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get org by id")
	}
	return &o, nil
}

func (r *PostgreSQLOrgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM orgs WHERE id = $1`, id)
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
