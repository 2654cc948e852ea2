// Package mysql implements sequence.Repository against MySQL.
package mysql

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
		INSERT IGNORE INTO sequences (name, value) VALUES (?, 0)`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to init sequence "+name)
	}
	return nil
}

// Next advances the counter with a row lock and a follow-up read, since
// MySQL's UPDATE ... RETURNING equivalent is not portable across engines.
func (r *Repository) Next(ctx context.Context, name string) (int64, error) {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `
		UPDATE sequences SET value = value + 1 WHERE name = ?`, name)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to advance sequence "+name)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return 0, apperrors.ErrSequenceMissing
	}

	row := querier.QueryRowContext(ctx, `SELECT value FROM sequences WHERE name = ?`, name)
	var value int64
	if err := row.Scan(&value); err != nil {
		return 0, apperrors.Wrap(err, "failed to read sequence "+name)
	}
	return value, nil
}
