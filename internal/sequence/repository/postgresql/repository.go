// Package postgresql implements sequence.Repository against PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Repository backs the sequences table.
type Repository struct {
	db *sql.DB
}

// NewRepository builds a Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Init(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx, `
		INSERT INTO sequences (name, value) VALUES ($1, 0)
		ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to init sequence "+name)
	}
	return nil
}

func (r *Repository) Next(ctx context.Context, name string) (int64, error) {
	querier := database.GetTx(ctx, r.db)
	row := querier.QueryRowContext(ctx, `
		UPDATE sequences SET value = value + 1
		WHERE name = $1
		RETURNING value`, name)

	var value int64
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return 0, apperrors.ErrSequenceMissing
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to advance sequence "+name)
	}
	return value, nil
}
