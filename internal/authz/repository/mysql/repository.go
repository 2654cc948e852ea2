// Package mysql implements authz.Repository against MySQL.
package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/EnvSync-Cloud/envsync/internal/authz"
	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Repository backs the authz_tuples table.
type Repository struct {
	db *sql.DB
}

// NewRepository builds a Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, t *authz.Tuple) error {
	querier := database.GetTx(ctx, r.db)
	t.CreatedAt = time.Now().UTC()
	_, err := querier.ExecContext(ctx, `
		INSERT IGNORE INTO authz_tuples (subject, relation, object_type, object_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.Subject, t.Relation, t.ObjectType, t.ObjectID, t.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to insert authz_tuples row")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, subject, relation, objectType, objectID string) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `
		DELETE FROM authz_tuples
		WHERE subject = ? AND relation = ? AND object_type = ? AND object_id = ?`,
		subject, relation, objectType, objectID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete authz_tuples row")
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

func (r *Repository) Find(ctx context.Context, filter authz.Filter) ([]*authz.Tuple, error) {
	querier := database.GetTx(ctx, r.db)

	var where []string
	var args []any
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, column+" = ?")
	}
	add("subject", filter.Subject)
	add("relation", filter.Relation)
	add("object_type", filter.ObjectType)
	add("object_id", filter.ObjectID)

	query := `SELECT id, subject, relation, object_type, object_id, created_at FROM authz_tuples`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list authz_tuples")
	}
	defer rows.Close()

	var out []*authz.Tuple
	for rows.Next() {
		var t authz.Tuple
		if err := rows.Scan(&t.ID, &t.Subject, &t.Relation, &t.ObjectType, &t.ObjectID, &t.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan authz_tuples row")
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
